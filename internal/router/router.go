package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hostel-room-allocation/internal/config"
	"github.com/iliyamo/hostel-room-allocation/internal/handler"
	"github.com/iliyamo/hostel-room-allocation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAllocation registers the allocation endpoints.  All routes
// require a valid access token issued by the external auth service;
// reallocation additionally requires the ADMIN role.  The suggestions
// route sits behind the Redis response cache (a nil Redis client
// degrades the cache to a passthrough).
func RegisterAllocation(e *echo.Echo, a *handler.AllocationHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	// Residents submit their own allocation request; the resident ID
	// comes from the token subject, never from the body.
	g.POST("/allocations", a.Submit, middleware.RequireRole("RESIDENT", "ADMIN"))

	// Read-only suggestions, cache-backed.  The commit path never
	// reads this cache.
	g.GET("/residents/:id/suggestions", a.Suggestions,
		middleware.RequireRole("RESIDENT", "ADMIN"),
		middleware.NewRedisCache(cacheCfg, rdb))

	// Admin-driven move of an approved request to a different room.
	g.PATCH("/allocations/:id/reallocate", a.Reallocate, middleware.RequireRole("ADMIN"))
}
