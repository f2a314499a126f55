package api

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wefixit/internal/service"
	"wefixit/internal/upload"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ImageSaver persists an uploaded image and returns its public reference.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type Deps struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Reviews  *service.ReviewService
	Quotes   *service.QuoteService
	Contacts *service.ContactService

	Images    ImageSaver
	UploadDir string
	Pinger    Pinger

	JWTSecret   string
	CORSOrigins []string
	Logger      *zap.Logger
}

var _ ImageSaver = (*upload.Store)(nil)

// NewRouter wires middleware, probes and the /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(RecoveryMiddleware(d.Logger))
	r.Use(TraceMiddleware())
	r.Use(LoggingMiddleware(d.Logger))
	r.Use(MetricsMiddleware())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/healthz", healthz)
	r.HEAD("/healthz", healthz)
	r.GET("/readyz", readyz(d.Pinger, d.Logger))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.UploadDir != "" {
		r.Static(upload.PublicPrefix, d.UploadDir)
	}

	auth := &authHandler{svc: d.Auth, logger: d.Logger}
	quotes := &quoteHandler{svc: d.Quotes, logger: d.Logger}
	projects := &projectHandler{svc: d.Projects, images: d.Images, logger: d.Logger}
	reviews := &reviewHandler{svc: d.Reviews, logger: d.Logger}
	contact := &contactHandler{svc: d.Contacts, logger: d.Logger}

	admin := AuthMiddleware(d.JWTSecret, d.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", auth.login)
		v1.GET("/auth/me", admin, auth.me)

		v1.GET("/services", quotes.catalog)
		v1.POST("/quotes/estimate", quotes.estimate)
		v1.POST("/quotes", quotes.submit)
		v1.GET("/quotes", admin, quotes.list)
		v1.GET("/quotes/:id", admin, quotes.get)

		v1.GET("/projects", projects.list)
		v1.GET("/projects/:id", projects.get)
		v1.POST("/projects", admin, projects.create)
		v1.PUT("/projects/:id", admin, projects.update)
		v1.PATCH("/projects/:id/featured", admin, projects.setFeatured)
		v1.DELETE("/projects/:id", admin, projects.delete)

		v1.GET("/reviews", reviews.listApproved)
		v1.GET("/reviews/all", admin, reviews.listAll)
		v1.POST("/reviews", reviews.submit)
		v1.PATCH("/reviews/:id/approve", admin, reviews.approve)
		v1.DELETE("/reviews/:id", admin, reviews.delete)

		v1.POST("/contact", contact.submit)
		v1.GET("/contact", admin, contact.list)
		v1.DELETE("/contact/:id", admin, contact.delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "not_found", Message: "route not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
		ExposeHeaders:    []string{"X-Trace-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyz(p Pinger, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			l.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
