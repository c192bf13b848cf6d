package main

import (
	"context"
	"net/http"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/cardsearch"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/cart"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/config"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/httpx"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/media"
	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/owner"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()
	repo := catalog.NewPGRepo(pool)

	bus := EventBus.New()
	carts, err := cart.Open(cfg.CartDBPath, bus)
	if err != nil {
		log.WithError(err).Fatal("open cart store")
	}
	defer carts.Close()

	images, err := media.NewStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.WithError(err).Fatal("open media store")
	}

	auth, err := owner.NewService(cfg.OwnerUsername, cfg.OwnerPassword, []byte(cfg.JWTSecret), cfg.SessionTTL)
	if err != nil {
		log.WithError(err).Fatal("init owner auth")
	}

	cards := cardsearch.NewClient(cfg.TCGAPIBaseURL, cfg.TCGAPIKey)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.Static("/media", images.Dir())

	api := r.Group("/api")
	{
		api.GET("/pages/landing", landingPageHandler(repo))
		api.GET("/pages/products", productsPageHandler(repo))
		api.GET("/pages/about", aboutPageHandler())
		api.GET("/pages/contact", contactPageHandler())

		api.GET("/products", listProductsHandler(repo))
		api.GET("/products/:id", getProductHandler(repo))

		api.GET("/cart", getCartHandler(carts))
		api.GET("/cart/count", cartCountHandler(carts))
		api.POST("/cart/items", addCartItemHandler(carts, repo))
		api.DELETE("/cart", clearCartHandler(carts))
		api.GET("/cart/ws", cartWSHandler(carts, bus, upgrader))

		api.POST("/owner/login", loginHandler(auth))

		admin := api.Group("/admin", ownerRequired(auth))
		{
			admin.GET("/products", listAllProductsHandler(repo))
			admin.POST("/products", createProductHandler(repo))
			admin.POST("/products/tcg", createTCGProductHandler(repo))
			admin.PUT("/products/:id", updateProductHandler(repo))
			admin.DELETE("/products/:id", deleteProductHandler(repo))
			admin.POST("/uploads", uploadImageHandler(images))
			admin.GET("/cards/search", searchCardsHandler(cards))
			admin.GET("/cards/ws", searchCardsWSHandler(cards, cfg.SearchDebounce, upgrader))
		}
	}

	log.WithField("addr", cfg.Addr).Info("storefront listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
