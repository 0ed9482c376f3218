package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate/sneaker-market/internal/models"
)

// CreateProposition opens a negotiation. The caller must be a party to it;
// see the rules in the service layer for who may create what.
func (h *Handler) CreateProposition(c *gin.Context) {
	var req models.PropositionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalid(c, err)
		return
	}

	prop, err := h.svc.CreateProposition(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prop)
}

func (h *Handler) ListPropositions(c *gin.Context) {
	var filter models.PropositionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.respondInvalid(c, err)
		return
	}

	props, err := h.svc.ListPropositions(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, props)
}

// ListMyPropositions returns every proposition where the caller is seller or
// buyer.
func (h *Handler) ListMyPropositions(c *gin.Context) {
	var page models.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		h.respondInvalid(c, err)
		return
	}

	props, err := h.svc.ListMyPropositions(c.Request.Context(), currentUser(c).ID, page.Skip, page.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, props)
}

func (h *Handler) GetProposition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	prop, err := h.svc.GetProposition(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prop)
}

func (h *Handler) UpdateProposition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	var upd models.PropositionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.respondInvalid(c, err)
		return
	}

	prop, err := h.svc.UpdateProposition(c.Request.Context(), currentUser(c).ID, id, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prop)
}

func (h *Handler) DeleteProposition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.respondInvalid(c, err)
		return
	}

	if err := h.svc.DeleteProposition(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
