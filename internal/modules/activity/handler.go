package activity

import (
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes mounts public endpoints on rg and management endpoints on
// corporate (admin-authenticated with a resolved corporate context).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, corporate *gin.RouterGroup) {
	rg.GET("/activities", h.List)
	rg.GET("/activities/search", h.Search)
	rg.GET("/activities/popular", h.Popular)
	rg.GET("/activities/:id", h.Get)
	rg.GET("/activities/:id/availability", h.CheckAvailability)

	corporate.POST("/activities", h.Create)
	corporate.GET("/activities/my-activities", h.MyActivities)
	corporate.PATCH("/activities/:id", h.Update)
	corporate.DELETE("/activities/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req, middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.ActivityFilters{
		Country:  c.Query("country"),
		Province: c.Query("province"),
	}
	if v := c.Query("activity_type_id"); v != "" {
		f.ActivityTypeID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("corporate_id"); v != "" {
		f.CorporateID, _ = strconv.ParseInt(v, 10, 64)
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, total, err := h.service.FindAll(c.Request.Context(), f)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"activities": activities,
		"total":      total,
	})
}

func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing search query")
		return
	}

	activities, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, activities)
}

func (h *Handler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := h.service.Popular(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, activities)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid activity ID")
		return
	}

	a, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) MyActivities(c *gin.Context) {
	activities, err := h.service.FindByCorporate(c.Request.Context(), middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, activities)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid activity ID")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}
	timeOfDay := c.Query("time")
	people, err := strconv.Atoi(c.DefaultQuery("people", "1"))
	if err != nil || people < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid number of people")
		return
	}

	res, err := h.service.CheckAvailability(c.Request.Context(), id, date, timeOfDay, people)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid activity ID")
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, middleware.CorporateID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid activity ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id, middleware.CorporateID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	case ErrCorporateNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Corporate not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own activities")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid activity data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
