package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Car is an opaque record: its attributes are whatever the client sent.
// On the wire the attributes sit next to id, createdAt and updatedAt.
type Car struct {
	ID         int64
	Attributes map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var reservedCarKeys = []string{"id", "createdAt", "updatedAt"}

// StripReserved removes keys that would shadow the car's own fields.
func StripReserved(attrs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	for _, k := range reservedCarKeys {
		delete(out, k)
	}
	return out
}

func (c Car) MarshalJSON() ([]byte, error) {
	out := StripReserved(c.Attributes)
	out["id"] = c.ID
	out["createdAt"] = c.CreatedAt
	out["updatedAt"] = c.UpdatedAt
	return json.Marshal(out)
}

func (c *Car) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &c.ID); err != nil {
			return fmt.Errorf("car id: %w", err)
		}
	}
	if v, ok := raw["createdAt"]; ok {
		if err := json.Unmarshal(v, &c.CreatedAt); err != nil {
			return fmt.Errorf("car createdAt: %w", err)
		}
	}
	if v, ok := raw["updatedAt"]; ok {
		if err := json.Unmarshal(v, &c.UpdatedAt); err != nil {
			return fmt.Errorf("car updatedAt: %w", err)
		}
	}

	c.Attributes = make(map[string]interface{}, len(raw))
	for k, v := range raw {
		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		c.Attributes[k] = val
	}
	c.Attributes = StripReserved(c.Attributes)
	return nil
}

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

func (p Pagination) Skip() int {
	return (p.Page - 1) * p.PerPage
}

type CarPage struct {
	Items   []Car `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}
