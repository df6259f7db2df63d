package corporate

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
	rg.POST("/corporates/register", h.Register)
	rg.GET("/corporates/:id", h.Get)

	corporate.GET("/corporates/me", h.Me)
	corporate.PATCH("/corporates/me", h.Update)
	corporate.POST("/corporates/me/branches", h.AddBranch)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterCorporateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid corporate ID")
		return
	}

	corp, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, corp)
}

func (h *Handler) Me(c *gin.Context) {
	corp, err := h.service.FindOne(c.Request.Context(), middleware.CorporateID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, corp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCorporateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	corp, err := h.service.Update(c.Request.Context(), middleware.CorporateID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, corp)
}

func (h *Handler) AddBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	branch, err := h.service.AddBranch(c.Request.Context(), middleware.CorporateID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, branch)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Corporate not found")
	case ErrEmailAlreadyExists:
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid corporate data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
