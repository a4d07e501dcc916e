package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myRoomStore/internal/middleware"
	"myRoomStore/internal/rest"
)

// SetupAuthRoutes registers the session endpoints. Trailing slashes match
// the public API contract.
func SetupAuthRoutes(e *echo.Echo, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	e.POST("/register/", handler.Register)
	e.POST("/login/", handler.Login)
	e.POST("/logout/", handler.Logout, authRequired)
	e.POST("/token/refresh/", handler.RefreshToken)
}

// SetupUserRoutes registers the admin-only account management surface.
func SetupUserRoutes(e *echo.Echo, handler *rest.UserHandler, authRequired, staffOnly echo.MiddlewareFunc) {
	users := e.Group("/users", authRequired, staffOnly)

	users.GET("/", handler.GetAllUsers)
	users.POST("/", handler.CreateUser)
	users.GET("/:id/", handler.GetUserByID)
	users.PUT("/:id/", handler.UpdateUser)
	users.PATCH("/:id/", handler.UpdateUser)
	users.DELETE("/:id/", handler.DeleteUser)
}

// SetupProductRoutes: reads are public (archived rows hidden from
// non-staff), writes are staff-only.
func SetupProductRoutes(e *echo.Echo, handler *rest.ProductHandler, authRequired, staffOnly echo.MiddlewareFunc) {
	products := e.Group("/products", middleware.OptionalAuth())

	products.GET("/", handler.GetAllProducts)
	products.GET("/:id/", handler.GetProductByID)

	products.POST("/", handler.CreateProduct, authRequired, staffOnly)
	products.PUT("/:id/", handler.UpdateProduct, authRequired, staffOnly)
	products.PATCH("/:id/", handler.UpdateProduct, authRequired, staffOnly)
	products.DELETE("/:id/", handler.DeleteProduct, authRequired, staffOnly)
}

func SetupWishlistRoutes(e *echo.Echo, handler *rest.WishlistHandler, authRequired echo.MiddlewareFunc) {
	wishlist := e.Group("/wishlist", authRequired)

	wishlist.GET("/", handler.GetItems)
	wishlist.POST("/", handler.AddItem)
	wishlist.GET("/:id/", handler.GetItem)
	wishlist.DELETE("/:id/", handler.RemoveItem)
}

func SetupCartRoutes(e *echo.Echo, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := e.Group("/cart", authRequired)

	cart.GET("/", handler.GetItems)
	cart.POST("/", handler.AddItem)
	cart.GET("/:id/", handler.GetItem)
	cart.PATCH("/:id/", handler.UpdateItem)
	cart.DELETE("/:id/", handler.RemoveItem)
}

func SetupOrdersRoutes(e *echo.Echo, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := e.Group("/orders", authRequired)

	orders.GET("/", handler.GetOrders)
	orders.POST("/", handler.PlaceOrder)
	orders.GET("/:id/", handler.GetOrderByID)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
