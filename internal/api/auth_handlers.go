package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solemate/sneaker-market/internal/apperrors"
	"github.com/solemate/sneaker-market/internal/models"
)

// Register creates a new account. The response never carries the password or
// its hash.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalid(c, err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges form credentials (username holds the email) for a bearer
// token.
func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.respondError(c, fmt.Errorf("%w: username and password are required", apperrors.ErrUnauthenticated))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), email, password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
