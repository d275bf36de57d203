package routes

import (
	"brewhouse/analytics"
	"brewhouse/auth"
	"brewhouse/cart"
	"brewhouse/checkout"
	"brewhouse/inventory"
	"brewhouse/lifecycle"
	"brewhouse/loyalty"
	"brewhouse/menu"
	"brewhouse/middleware"
	"brewhouse/ratelim"
	"brewhouse/ratings"
	"brewhouse/receipts"
	"brewhouse/tracker"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/auth/login", rl.Limit(h.Login))
	router.POST("/auth/register", rl.Limit(h.Register))
}

func AddMenuRoutes(router *httprouter.Router, h *menu.Handler) {
	router.GET("/menu", h.GetMenu)
	router.POST("/menu", middleware.Authenticate(h.CreateItem))
	router.PUT("/menu/:id", middleware.Authenticate(h.ReplaceItem))
	router.DELETE("/menu/:id", middleware.Authenticate(h.DeleteItem))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/cart", middleware.Authenticate(h.GetCart))
	router.POST("/cart", middleware.Authenticate(h.AddToCart))
	router.PUT("/cart/:lineid", middleware.Authenticate(h.UpdateQuantity))
	router.DELETE("/cart/:lineid", middleware.Authenticate(h.RemoveLine))
}

func AddLoyaltyRoutes(router *httprouter.Router, h *loyalty.Handler) {
	router.GET("/loyalty/:userid", middleware.Authenticate(h.GetPoints))
	router.POST("/loyalty/:userid", middleware.Authenticate(h.SetPoints))
}

func AddOrderRoutes(router *httprouter.Router, co *checkout.Handler, lc *lifecycle.Handler, rc *receipts.Handler) {
	router.POST("/checkout", middleware.Authenticate(co.PlaceOrder))
	router.POST("/orders", middleware.Authenticate(co.SaveOrder))
	router.GET("/orders/:orderid", middleware.Authenticate(lc.GetOrder))
	router.PUT("/orders/:orderid/status", middleware.Authenticate(lc.UpdateStatus))
	router.GET("/orders/:orderid/receipt", middleware.Authenticate(rc.PrintReceipt))
}

func AddRatingsRoutes(router *httprouter.Router, h *ratings.Handler) {
	router.POST("/ratings", middleware.Authenticate(h.SubmitRating))
	router.GET("/ratings/:orderid", middleware.Authenticate(h.GetRating))
}

func AddInventoryRoutes(router *httprouter.Router, h *inventory.Handler) {
	router.GET("/inventory", middleware.Authenticate(h.GetInventory))
	router.PUT("/inventory/:id", middleware.Authenticate(h.SetStock))
}

func AddAnalyticsRoutes(router *httprouter.Router, h *analytics.Handler) {
	router.GET("/analytics/orders", middleware.Authenticate(h.GetOrders))
	router.GET("/analytics/summary", middleware.Authenticate(h.GetSummary))
}

func AddTrackerRoutes(router *httprouter.Router, hub *tracker.Hub) {
	router.GET("/ws/orders/:orderid", middleware.Authenticate(hub.Track))
}
