package visit

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
	rg.GET("/bookings/:id/visit", h.Get)
	rg.POST("/bookings/:id/visit/checkin", h.CheckIn)
	rg.POST("/bookings/:id/visit/checkout", h.CheckOut)
}

func (h *Handler) Get(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	v, err := h.service.Get(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"visit": v})
}

type visitRequest struct {
	ActualParticipants *int `json:"actual_participants_count"`
}

func (h *Handler) CheckIn(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req visitRequest
	_ = c.ShouldBindJSON(&req)

	v, err := h.service.CheckIn(c.Request.Context(), bookingID, req.ActualParticipants, employeeID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"visit": v})
}

func (h *Handler) CheckOut(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req visitRequest
	_ = c.ShouldBindJSON(&req)

	v, err := h.service.CheckOut(c.Request.Context(), bookingID, req.ActualParticipants, employeeID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"visit": v})
}

func employeeID(c *gin.Context) *int64 {
	if id := c.GetInt64("employee_id"); id != 0 {
		return &id
	}
	return nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrAlreadyCheckedIn):
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", "Visit is already checked in")
	case errors.Is(err, ErrNotCheckedIn):
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", "Visit has not been checked in yet")
	case errors.Is(err, ErrAlreadyCheckedOut):
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", "Visit is already checked out")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update visit")
	}
}
