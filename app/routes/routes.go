// Package routes wires controllers onto the router with the auth and role
// guards each surface needs.
package routes

import (
	"github.com/shashiranjanraj/showroom/app/controllers"
	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/metrics"
	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
	"github.com/shashiranjanraj/showroom/pkg/router"
)

// Controllers bundles everything Register mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Catalog *controllers.CatalogController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Review  *controllers.ReviewController
	User    *controllers.UserController
	Upload  *controllers.UploadController
}

// Register mounts every route. Public reads need no credential; customer
// routes need any authenticated user; admin routes need ADMIN or above; role
// assignment needs SUPER_ADMIN.
func Register(r *router.Router, c Controllers, tokens *auth.Manager, resolve middleware.UserResolver) {
	r.HandleFunc("/metrics", metrics.Handler())

	authed := middleware.Auth(tokens, resolve)
	api := r.Group("/api/v1")

	// Public
	api.Post("/auth/register", "auth.register", c.Auth.Register)
	api.Post("/auth/login", "auth.login", c.Auth.Login)
	api.Get("/vehicles", "vehicles.index", c.Catalog.Index)
	api.Get("/vehicles/{id}", "vehicles.show", c.Catalog.Show)
	api.Get("/vehicles/{id}/reviews", "reviews.index", c.Review.Index)

	// Authenticated customers
	user := api.Group("", authed)
	user.Get("/auth/profile", "auth.profile", c.Auth.Profile)
	user.Get("/cart", "cart.index", c.Cart.Index)
	user.Post("/cart", "cart.store", c.Cart.Store)
	user.Put("/cart/{id}", "cart.update", c.Cart.Update)
	user.Delete("/cart/{id}", "cart.destroy", c.Cart.Destroy)
	user.Post("/orders", "orders.store", c.Order.Store)
	user.Get("/orders", "orders.index", c.Order.Index)
	user.Get("/orders/{id}", "orders.show", c.Order.Show)
	user.Put("/orders/{id}/cancel", "orders.cancel", c.Order.Cancel)
	user.Post("/vehicles/{id}/reviews", "reviews.store", c.Review.Store)
	user.Put("/reviews/{id}", "reviews.update", c.Review.Update)
	user.Delete("/reviews/{id}", "reviews.destroy", c.Review.Destroy)

	// Back office
	admin := api.Group("/admin", authed, rbac.AdminOnly)
	admin.Post("/vehicles", "admin.vehicles.store", c.Catalog.Store)
	admin.Put("/vehicles/{id}", "admin.vehicles.update", c.Catalog.Update)
	admin.Delete("/vehicles/{id}", "admin.vehicles.destroy", c.Catalog.Destroy)
	admin.Get("/orders", "admin.orders.index", c.Order.AdminIndex)
	admin.Patch("/orders/{id}/status", "admin.orders.status", c.Order.AdminSetStatus)
	admin.Put("/orders/{id}/cancel", "admin.orders.cancel", c.Order.Cancel)
	admin.Get("/users", "admin.users.index", c.User.Index)
	admin.Post("/uploads", "admin.uploads.store", c.Upload.Store)
	admin.Delete("/uploads", "admin.uploads.destroy", c.Upload.Destroy)

	// Role assignment is the one SUPER_ADMIN-only surface.
	super := api.Group("/admin", authed, rbac.SuperAdminOnly)
	super.Put("/users/{id}/role", "admin.users.role", c.User.SetRole)
}
