package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jumparena/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions", h.ListMine)
	rg.GET("/subscriptions/redeemable", h.ListRedeemable)
	rg.GET("/subscriptions/:id", h.Get)
	rg.POST("/subscriptions/purchase", h.Purchase)
}

func (h *Handler) Get(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid subscription id")
		return
	}

	sub, err := h.service.Get(c.Request.Context(), id, clientID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscription": sub})
}

// ListRedeemable returns only the subscriptions that can still pay for a
// booking, for the booking form.
func (h *Handler) ListRedeemable(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	subs, err := h.service.ListRedeemable(c.Request.Context(), clientID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *Handler) ListMine(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	subs, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *Handler) Purchase(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.service.Purchase(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subscription": sub})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid subscription input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process subscription")
	}
}
