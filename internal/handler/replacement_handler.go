package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/service"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/response"
)

// ReplacementHandler exposes shift replacement request endpoints.
type ReplacementHandler struct {
	replacements *service.ReplacementService
}

// NewReplacementHandler constructs a ReplacementHandler.
func NewReplacementHandler(replacements *service.ReplacementService) *ReplacementHandler {
	return &ReplacementHandler{replacements: replacements}
}

// List godoc
// @Summary List all replacement requests
// @Tags Replacements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /replacements [get]
func (h *ReplacementHandler) List(c *gin.Context) {
	items, err := h.replacements.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// ListMine godoc
// @Summary List the caller's replacement requests
// @Tags Replacements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /replacements/mine [get]
func (h *ReplacementHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.replacements.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Request a replacement for one of the caller's assignments
// @Tags Replacements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateReplacementRequest true "Replacement request"
// @Success 201 {object} response.Envelope{data=models.ReplacementRequest}
// @Router /replacements [post]
func (h *ReplacementHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.replacements.Request(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Decide godoc
// @Summary Approve or refuse a replacement request
// @Tags Replacements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Replacement request ID"
// @Param payload body dto.DecideReplacementRequest true "Decision"
// @Success 200 {object} response.Envelope{data=models.ReplacementRequest}
// @Router /replacements/{id}/decision [post]
func (h *ReplacementHandler) Decide(c *gin.Context) {
	var req dto.DecideReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	decided, err := h.replacements.Decide(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, decided, nil)
}
