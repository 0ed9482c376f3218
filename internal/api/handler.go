package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/solemate/sneaker-market/internal/apperrors"
	"github.com/solemate/sneaker-market/internal/models"
	"github.com/solemate/sneaker-market/internal/service"
	"github.com/solemate/sneaker-market/internal/utils"
)

// Handler holds the HTTP handlers for all routes
type Handler struct {
	svc    service.Service
	logger *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: utils.NewLogger(),
	}
}

// SetupRoutes registers all routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(RequestID())

	router.GET("/", h.Root)
	router.GET("/api/health", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := router.Group("/api/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	sneakers := router.Group("/api/sneakers")
	{
		sneakers.GET("", h.ListSneakers)
		sneakers.GET("/:id", h.GetSneaker)

		authed := sneakers.Group("", AuthMiddleware(h.svc))
		{
			authed.POST("", h.CreateSneaker)
			authed.PUT("/:id", h.UpdateSneaker)
			authed.DELETE("/:id", h.DeleteSneaker)
		}
	}

	propositions := router.Group("/api/propositions")
	{
		propositions.GET("", h.ListPropositions)

		authed := propositions.Group("", AuthMiddleware(h.svc))
		{
			authed.POST("", h.CreateProposition)
			authed.GET("/my-propositions", h.ListMyPropositions)
			authed.GET("/:id", h.GetProposition)
			authed.PUT("/:id", h.UpdateProposition)
			authed.DELETE("/:id", h.DeleteProposition)
		}
	}
}

// Root returns the welcome message
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{
		Message: "Welcome to Sneaker Market API",
	})
}

// Health probes database connectivity. A broken database degrades the
// response instead of crashing the process.
func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// respondError maps service errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", err))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, errorBody("FORBIDDEN", err))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorBody("UNAUTHORIZED", err))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, errorBody("CONFLICT", err))
	case errors.Is(err, apperrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", err))
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusBadRequest, errorBody("INVALID_STATE", err))
	default:
		h.logger.Error("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		})
	}
}

func (h *Handler) respondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", err))
}

func errorBody(code string, err error) models.ErrorResponse {
	return models.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: err.Error(),
	}
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
