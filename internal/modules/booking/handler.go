package booking

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

// RegisterStaffRoutes wires the admin/staff booking endpoints.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateZoneBooking)
	rg.GET("/bookings/:id", h.GetDetails)
	rg.POST("/bookings/:id/status", h.UpdateStatus)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.POST("/bookings/:id/services", h.AddService)
	rg.DELETE("/bookings/:id/services/:serviceID", h.RemoveService)
}

// RegisterClientRoutes wires the client self-service endpoints.
func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.POST("/schedule/:slotID/book", h.CreateSlotBooking)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.GetMine)
}

func (h *Handler) CreateZoneBooking(c *gin.Context) {
	var req CreateZoneBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.CreateZoneBooking(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CreateSlotBooking(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("slotID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid slot id")
		return
	}

	var req CreateSlotBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	req.SlotID = slotID
	req.ClientID = c.GetInt64("client_id")
	if req.ClientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	b, err := h.service.CreateSlotBooking(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, details)
}

// GetMine returns the aggregate only when the booking belongs to the caller.
func (h *Handler) GetMine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if details.Booking.ClientID != c.GetInt64("client_id") {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) ListMine(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is not linked to a client")
		return
	}

	list, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) AddService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	if err := h.service.AddService(c.Request.Context(), id, req.ServiceID, req.Qty, req.UnitPrice); err != nil {
		h.writeError(c, err)
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) RemoveService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	serviceID, err := strconv.ParseInt(c.Param("serviceID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	if err := h.service.RemoveService(c.Request.Context(), id, serviceID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": serviceID})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or referenced record not found")
	case errors.Is(err, ErrZoneOverlap):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Time window overlaps an existing booking on this zone")
	case errors.Is(err, ErrNoCapacity):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Not enough free seats in this slot")
	case errors.Is(err, ErrNoCredit):
		response.Error(c, http.StatusUnprocessableEntity, "SUBSCRIPTION_EXHAUSTED", "Subscription has no remaining visits or has expired")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
