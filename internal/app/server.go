package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/handlers"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/store"
)

// Deps is everything the router needs. Redis is optional; without it the
// redirect routes are not rate limited.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Email     service.EmailService
	RateLimit int
	Origins   []string
}

func NewServer(cfg Config) (*gin.Engine, func(), error) {
	// --- DB ---
	db, err := store.Open(store.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			store.Close(db)
			return nil, nil, err
		}
		log.Println("connected to redis")
	}

	sweeper, err := service.StartExpiryCron(db, cfg.SweepSchedule)
	if err != nil {
		store.Close(db)
		return nil, nil, err
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := NewRouter(Deps{
		DB:        db,
		Redis:     rdb,
		Email:     service.NewEmailService(cfg.SMTP),
		RateLimit: cfg.RedirectRateLimit,
		Origins:   cfg.CORSOrigins,
	})

	cleanup := func() {
		<-sweeper.Stop().Done()
		if rdb != nil {
			_ = rdb.Close()
		}
		store.Close(db)
	}
	return r, cleanup, nil
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), handlers.Recovery())
	r.Use(cors.New(corsConfig(d.Origins)))

	if d.Email == nil {
		d.Email = service.NewEmailService(service.SMTPConfig{})
	}

	// --- Services ---
	links := service.NewVendorLinkService(d.DB)
	clicks := service.NewClickRecorder(d.DB)
	redirects := service.NewRedirectService(d.DB, links, clicks)

	redirectH := handlers.NewRedirectHTTP(redirects)
	productH := handlers.NewProductHTTP(service.NewProductService(d.DB))
	orderH := handlers.NewOrderHTTP(service.NewOrderService(d.DB))
	authH := handlers.NewAuthHTTP(service.NewAuthService(d.DB), service.NewUserService(d.DB))
	subH := handlers.NewSubscriptionHTTP(service.NewSubscriptionService(d.DB, d.Email))
	adminH := handlers.NewAdminHTTP(links, service.NewStatsService(d.DB), clicks)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"app": "Shopearn Pro API", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"collections": []string{
			"users", "products", "orders", "clicks", "admin_settings", "subscriptions",
		}})
	})

	r.POST("/auth/signup", authH.Signup)
	r.POST("/auth/login", authH.Login)
	r.GET("/users", authH.ListUsers)
	r.PUT("/users/:id", authH.UpdateUser)

	r.GET("/products", productH.List)
	r.POST("/products", productH.Create)
	r.GET("/products/:id", productH.Get)
	r.PUT("/products/:id", productH.Update)
	r.DELETE("/products/:id", productH.Delete)

	// --- Click tracking and redirects ---
	rd := r.Group("/r")
	if d.Redis != nil && d.RateLimit > 0 {
		rd.Use(handlers.NewRateLimiter(d.Redis, d.RateLimit, time.Minute).Middleware())
	}
	rd.GET("/product/:product_id", redirectH.Product)
	rd.GET("/:vendor", redirectH.Vendor)

	r.POST("/orders", orderH.Create)
	r.GET("/orders", orderH.List)

	r.POST("/subscriptions", subH.Create)
	r.GET("/subscriptions", subH.List)

	admin := r.Group("/admin")
	admin.GET("/settings", adminH.GetSettings)
	admin.POST("/settings", adminH.SaveSettings)
	admin.GET("/stats", adminH.GetStats)
	admin.GET("/clicks", adminH.ListClicks)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
