package routes

import (
	"net/http"

	"auris/cart"
	"auris/catalog"
	"auris/checkout"
	"auris/images"
	"auris/live"
	"auris/middleware"
	"auris/ratelim"
	"auris/receipt"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/home", catalog.GetHome)
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:slug", catalog.GetProduct)
	router.GET("/api/categories", catalog.GetCategories)
	router.GET("/api/category/:category", catalog.GetCategory)
	router.GET("/api/images/products/:name", images.GetProductThumb)
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *cart.Handler) {
	router.GET("/api/cart", middleware.Session(h.GetCart))
	router.GET("/api/cart/count", middleware.Session(h.GetCount))
	router.POST("/api/cart/items", rateLimiter.Limit(middleware.Session(h.AddItem)))
	router.PUT("/api/cart/items/:productid", rateLimiter.Limit(middleware.Session(h.UpdateItem)))
	router.DELETE("/api/cart/items/:productid", rateLimiter.Limit(middleware.Session(h.RemoveItem)))
	router.DELETE("/api/cart", rateLimiter.Limit(middleware.Session(h.ClearCart)))
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *checkout.Handler, rc *receipt.Handler) {
	router.GET("/api/checkout/summary", middleware.Session(h.GetSummary))
	router.POST("/api/checkout", rateLimiter.Limit(middleware.Session(h.Submit)))
	router.POST("/api/checkout/order/:orderid/confirm", rateLimiter.Limit(middleware.Session(h.Confirm)))
	router.DELETE("/api/checkout/order/:orderid", rateLimiter.Limit(middleware.Session(h.Cancel)))
	router.GET("/api/checkout/order/:orderid/receipt", middleware.Session(rc.Download))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub, sessions *cart.Sessions) {
	router.GET("/ws/cart", middleware.Session(live.WebSocketHandler(hub, sessions)))
}
