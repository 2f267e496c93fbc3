package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/Domenick1991/shareit/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type bookerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookedItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}

type bookingResponse struct {
	ID     int64              `json:"id"`
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Status string             `json:"status"`
	Item   bookedItemResponse `json:"item"`
	Booker bookerResponse     `json:"booker"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register expects a group that already runs RequireUser. guard runs in front of mutating routes.
func (h *BookingHandler) Register(router *gin.RouterGroup, guard gin.HandlerFunc) {
	router.POST("", guard, h.create)
	router.PATCH("/:id", guard, h.approve)
	router.GET("/owner", h.listForOwner)
	router.GET("/:id", h.get)
	router.GET("", h.listForBooker)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), requesterID(c), booking.CreateBookingInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		badRequest(c, "approved must be true or false")
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), requesterID(c), id, approved)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), requesterID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) listForBooker(c *gin.Context) {
	state, from, size, ok := listParams(c)
	if !ok {
		return
	}
	bookings, err := h.service.ListForBooker(c.Request.Context(), requesterID(c), state, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) listForOwner(c *gin.Context) {
	state, from, size, ok := listParams(c)
	if !ok {
		return
	}
	bookings, err := h.service.ListForOwner(c.Request.Context(), requesterID(c), state, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// listParams reads state, from and size with defaults ALL, 0 and 10. Range checks are left to the engine.
func listParams(c *gin.Context) (string, int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		badRequest(c, "from must be an integer")
		return "", 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		badRequest(c, "size must be an integer")
		return "", 0, 0, false
	}
	return c.DefaultQuery("state", string(domain.CategoryAll)), from, size, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start.Format(time.RFC3339),
		End:    b.End.Format(time.RFC3339),
		Status: string(b.Status),
		Item: bookedItemResponse{
			ID:          b.Item.ID,
			Name:        b.Item.Name,
			Description: b.Item.Description,
			Available:   b.Item.Available,
			OwnerID:     b.Item.OwnerID,
		},
		Booker: bookerResponse{ID: b.Booker.ID, Name: b.Booker.Name, Email: b.Booker.Email},
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
