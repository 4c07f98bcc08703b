package service

// Owned is any resource that belongs to exactly one user.
type Owned interface {
	OwnerID() int64
}

// canAccess is the only ownership check in the service layer. Every
// per-user read, edit and delete goes through it.
func canAccess(actorID int64, resource Owned) bool {
	return resource != nil && actorID > 0 && resource.OwnerID() == actorID
}
