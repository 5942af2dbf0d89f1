package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListByProperty(c *gin.Context)
	ListByGuest(c *gin.Context)
	Update(c *gin.Context)
	Cancel(c *gin.Context)
	Rebook(c *gin.Context)
	Delete(c *gin.Context)
}

type BlockHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListByProperty(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type PropertyHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	ListOwners(c *gin.Context)
	GetOwner(c *gin.Context)
}

type Handlers struct {
	Booking  BookingHTTP
	Block    BlockHTTP
	Property PropertyHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := NewRouter(obsMW, health, h)
	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

// NewRouter builds the gin engine without binding it to a listener, which
// lets tests drive it through httptest.
func NewRouter(obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Owner-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.PATCH("/bookings/:id", h.Booking.Update)
		api.PATCH("/bookings/:id/cancel", h.Booking.Cancel)
		api.PATCH("/bookings/:id/rebook", h.Booking.Rebook)
		api.DELETE("/bookings/:id", h.Booking.Delete)
		api.GET("/properties/:id/bookings", h.Booking.ListByProperty)
		api.GET("/guests/:id/bookings", h.Booking.ListByGuest)
	}
	if h.Block != nil {
		api.POST("/blocks", h.Block.Create)
		api.GET("/blocks/:id", h.Block.Get)
		api.PATCH("/blocks/:id", h.Block.Update)
		api.DELETE("/blocks/:id", h.Block.Delete)
		api.GET("/properties/:id/blocks", h.Block.ListByProperty)
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.List)
		api.GET("/properties/:id", h.Property.Get)
		api.GET("/owners", h.Property.ListOwners)
		api.GET("/owners/:id", h.Property.GetOwner)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
