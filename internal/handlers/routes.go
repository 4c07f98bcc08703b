package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Varun5711/bookmarkd/internal/middleware"
)

// Router holds everything needed to build the HTTP surface.
type Router struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Bookmarks *BookmarkHandler
	Cars      *CarHandler
	Health    *HealthHandler
	Docs      *SwaggerHandler

	RequireAuth middleware.Middleware
	// AuthLimiter throttles /auth/*; nil disables it.
	AuthLimiter middleware.Limiter
}

func (rt *Router) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.Handler {
		return rt.RequireAuth(h)
	}
	throttle := func(h http.HandlerFunc) http.Handler {
		if rt.AuthLimiter == nil {
			return h
		}
		return middleware.RateLimit(rt.AuthLimiter)(h)
	}

	mux.Handle("POST /auth/signup", throttle(rt.Auth.Signup))
	mux.Handle("POST /auth/signin", throttle(rt.Auth.Signin))

	mux.Handle("GET /users/me", protect(rt.Users.GetMe))
	mux.Handle("PATCH /users", protect(rt.Users.EditMe))

	mux.Handle("GET /bookmarks", protect(rt.Bookmarks.List))
	mux.Handle("POST /bookmarks", protect(rt.Bookmarks.Create))
	mux.Handle("GET /bookmarks/{id}", protect(rt.Bookmarks.Get))
	mux.Handle("PATCH /bookmarks/{id}", protect(rt.Bookmarks.Edit))
	mux.Handle("DELETE /bookmarks/{id}", protect(rt.Bookmarks.Delete))
	mux.Handle("GET /bookmarks/{id}/qrcode", protect(rt.Bookmarks.QRCode))

	mux.Handle("POST /cars", protect(rt.Cars.Create))
	mux.HandleFunc("GET /cars", rt.Cars.List)
	mux.HandleFunc("GET /cars/{id}", rt.Cars.Get)
	mux.Handle("PATCH /cars/{id}", protect(rt.Cars.Update))
	mux.Handle("DELETE /cars/{id}", protect(rt.Cars.Remove))

	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	if rt.Docs != nil {
		rt.Docs.RegisterRoutes(mux)
	}

	return mux
}
