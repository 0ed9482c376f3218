package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate/sneaker-market/internal/models"
)

// CreateSneaker adds an inventory item. The owner defaults to the caller when
// user_id is absent from the payload.
func (h *Handler) CreateSneaker(c *gin.Context) {
	var req models.SneakerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalid(c, err)
		return
	}

	sneaker, err := h.svc.CreateSneaker(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sneaker)
}

func (h *Handler) ListSneakers(c *gin.Context) {
	var filter models.SneakerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.respondInvalid(c, err)
		return
	}

	sneakers, err := h.svc.ListSneakers(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sneakers)
}

func (h *Handler) GetSneaker(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	sneaker, err := h.svc.GetSneaker(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sneaker)
}

func (h *Handler) UpdateSneaker(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	var upd models.SneakerUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.respondInvalid(c, err)
		return
	}

	sneaker, err := h.svc.UpdateSneaker(c.Request.Context(), currentUser(c).ID, id, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sneaker)
}

func (h *Handler) DeleteSneaker(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	if err := h.svc.DeleteSneaker(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Sneaker deleted successfully"})
}
