package api

import (
	"net/http"

	"github.com/Domenick1991/shareit/internal/service/items"
	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service items.ItemUseCase
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type updateItemRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func NewItemHandler(service items.ItemUseCase) *ItemHandler {
	return &ItemHandler{service: service}
}

// Register expects a group that already runs RequireUser.
func (h *ItemHandler) Register(router *gin.RouterGroup, guard gin.HandlerFunc) {
	router.POST("", guard, h.create)
	router.PATCH("/:id", guard, h.update)
	router.GET("/:id", h.get)
	router.GET("", h.listOwned)
}

func (h *ItemHandler) create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.service.Create(c.Request.Context(), requesterID(c), items.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.service.SetAvailable(c.Request.Context(), requesterID(c), id, *req.Available)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.service.View(c.Request.Context(), requesterID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ItemHandler) listOwned(c *gin.Context) {
	views, err := h.service.ListByOwner(c.Request.Context(), requesterID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
