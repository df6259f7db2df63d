package booking

import (
	"errors"
	"net/http"
	"strconv"

	"itravelly/internal/middleware"
	"itravelly/internal/pkg/response"
	"itravelly/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts client endpoints on authed, management endpoints on
// corporate and administrative ones on admin.
func (h *Handler) RegisterRoutes(authed, corporate, admin *gin.RouterGroup) {
	authed.POST("/bookings", h.Create)
	authed.GET("/bookings/my-bookings", h.MyBookings)
	authed.GET("/bookings/code/:code", h.GetByCode)
	authed.GET("/bookings/:id", h.Get)
	authed.PATCH("/bookings/:id/cancel", h.Cancel)

	corporate.GET("/bookings/corporate", h.CorporateBookings)
	corporate.GET("/bookings/corporate/stats", h.Stats)
	corporate.PATCH("/bookings/:id/status", h.UpdateStatus)
	corporate.PATCH("/bookings/:id/payment-status", h.UpdatePaymentStatus)

	admin.GET("/bookings", h.List)
	admin.DELETE("/bookings/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.FindForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.FindOneForUser(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetByCode(c *gin.Context) {
	b, err := h.service.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CorporateBookings(c *gin.Context) {
	bookings, err := h.service.FindByCorporate(c.Request.Context(), middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context(), middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, middleware.CorporateID(c), req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, middleware.CorporateID(c), req.PaymentStatus)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	var f repository.BookingFilters
	if v := c.Query("user_id"); v != "" {
		f.UserID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("corporate_id"); v != "" {
		f.CorporateID, _ = strconv.ParseInt(v, 10, 64)
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.FindAll(c.Request.Context(), f)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var notAvail *NotAvailableError
	if errors.As(err, &notAvail) {
		response.Error(c, http.StatusBadRequest, "NOT_AVAILABLE", notAvail.Message)
		return
	}

	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case ErrActivityNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case ErrInvalidStatus:
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status value")
	case ErrAlreadyFinal:
		response.Error(c, http.StatusConflict, "ALREADY_FINAL", "Booking is already in a final state")
	case ErrCodeExhausted:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not allocate a booking code")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
