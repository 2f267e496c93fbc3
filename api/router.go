package api

import (
	"net/http"

	"github.com/Domenick1991/shareit/internal/service/booking"
	"github.com/Domenick1991/shareit/internal/service/items"
	"github.com/Domenick1991/shareit/internal/service/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Services struct {
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Items    items.ItemUseCase
}

// NewRouter mounts every route. limiter guards the mutating routes and may be nil.
func NewRouter(services Services, logger *zap.Logger, limiter *rate.Limiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	guard := RateLimit(limiter)
	NewUserHandler(services.Users).Register(router.Group("/users"), guard)
	NewItemHandler(services.Items).Register(router.Group("/items", RequireUser()), guard)
	NewBookingHandler(services.Bookings).Register(router.Group("/bookings", RequireUser()), guard)

	return router
}
