package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techstoreperu/storefront-backend/api/controllers"
	"github.com/techstoreperu/storefront-backend/api/middleware"
	"github.com/techstoreperu/storefront-backend/internal/analytics"
	"github.com/techstoreperu/storefront-backend/internal/cart"
	"github.com/techstoreperu/storefront-backend/internal/catalog"
	"github.com/techstoreperu/storefront-backend/internal/chat"
	"github.com/techstoreperu/storefront-backend/internal/orders"
	"github.com/techstoreperu/storefront-backend/internal/recommendations"
	"github.com/techstoreperu/storefront-backend/pkg/config"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbDep controllers.Pinger,
	redisDep controllers.Pinger,
	analyticsService analytics.Service,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	chatService chat.Service,
	recommendationsService recommendations.Service,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Metrics(httpMetrics))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
		"database": dbDep,
		"redis":    redisDep,
	}))

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/ping", controllers.PublicPing())

		api.Route("/v1", func(v1 chi.Router) {
			v1.Get("/analytics", controllers.Analytics(analyticsService, logg))

			v1.Route("/products", func(pr chi.Router) {
				pr.Get("/", controllers.ListProducts(catalogService, logg))
				pr.Get("/{productId}", controllers.GetProduct(catalogService, logg))
			})
			v1.Get("/categories", controllers.ListCategories(catalogService, logg))

			v1.Route("/cart", func(cr chi.Router) {
				cr.Get("/", controllers.GetCart(cartService, logg))
				cr.Post("/", controllers.AddCartItem(cartService, logg))
				cr.Patch("/{itemId}", controllers.UpdateCartItem(cartService, logg))
				cr.Delete("/{itemId}", controllers.RemoveCartItem(cartService, logg))
				cr.Delete("/", controllers.ClearCart(cartService, logg))
			})

			v1.Route("/orders", func(or chi.Router) {
				or.Post("/", controllers.CreateOrder(ordersService, logg))
				or.Get("/", controllers.ListOrders(ordersService, logg))
				or.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
			})

			v1.Route("/chat", func(ch chi.Router) {
				ch.Post("/", controllers.ChatReply(chatService, logg))
				ch.Get("/history", controllers.ChatHistory(chatService, logg))
			})

			v1.Route("/recommendations", func(rc chi.Router) {
				rc.Post("/", controllers.GenerateRecommendations(recommendationsService, logg))
				rc.Get("/", controllers.ListRecommendations(recommendationsService, logg))
			})
		})
	})

	return r
}
