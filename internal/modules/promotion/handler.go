package promotion

import (
	"net/http"
	"strconv"

	"itravelly/internal/middleware"
	"itravelly/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, corporate *gin.RouterGroup) {
	rg.GET("/promotions", h.List)
	rg.GET("/promotions/code/:code", h.GetByCode)
	rg.GET("/promotions/validate", h.Validate)
	rg.GET("/promotions/:id", h.Get)

	corporate.POST("/promotions", h.Create)
	corporate.PATCH("/promotions/:id", h.Update)
	corporate.DELETE("/promotions/:id", h.Delete)
	corporate.GET("/promotions/stats", h.Stats)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req, middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) List(c *gin.Context) {
	var activityID, corporateID int64
	if v := c.Query("activity_id"); v != "" {
		activityID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("corporate_id"); v != "" {
		corporateID, _ = strconv.ParseInt(v, 10, 64)
	}

	promotions, err := h.service.FindAll(c.Request.Context(), activityID, corporateID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, promotions)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promotion ID")
		return
	}

	p, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetByCode(c *gin.Context) {
	p, err := h.service.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Validate(c *gin.Context) {
	code := c.Query("code")
	activityID, err := strconv.ParseInt(c.Query("activity_id"), 10, 64)
	if code == "" || err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "code and activity_id are required")
		return
	}

	res, err := h.service.ValidatePromotion(c.Request.Context(), code, activityID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promotion ID")
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, middleware.CorporateID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promotion ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id, middleware.CorporateID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.GetPromotionStats(c.Request.Context(), middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Promotion not found")
	case ErrActivityNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage promotions for your own activities")
	case ErrDuplicateCode:
		response.Error(c, http.StatusBadRequest, "DUPLICATE_CODE", "Promotion code already exists")
	case ErrExpired, ErrNotYetValid, ErrUsageLimitReached:
		response.Error(c, http.StatusBadRequest, "PROMOTION_UNAVAILABLE", err.Error())
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid promotion data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
