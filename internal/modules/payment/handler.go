package payment

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

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/payments", h.Add)
	rg.GET("/bookings/:id/payments", h.List)
}

func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/pay", h.PayDue)
}

func (h *Handler) Add(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var employeeID *int64
	if id := c.GetInt64("employee_id"); id != 0 {
		employeeID = &id
	}

	p, err := h.service.Add(c.Request.Context(), bookingID, req.Amount, req.Method, req.Comment, employeeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	totals, err := h.service.Totals(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p, "totals": totals})
}

func (h *Handler) PayDue(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Method = "card"
	}

	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	p, err := h.service.PayDue(c.Request.Context(), bookingID, clientID, req.Method)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) List(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	payments, err := h.service.List(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	totals, err := h.service.Totals(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments, "totals": totals})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be greater than zero")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNothingDue):
		response.Error(c, http.StatusConflict, "NOTHING_DUE", "Booking is already fully paid")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}
