package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/service"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/response"
)

// AvailabilityHandler exposes availability endpoints.
type AvailabilityHandler struct {
	availabilities *service.AvailabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(availabilities *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilities: availabilities}
}

// ListByEmployee godoc
// @Summary List an employee's declared availability
// @Tags Availabilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/availabilities [get]
func (h *AvailabilityHandler) ListByEmployee(c *gin.Context) {
	items, err := h.availabilities.ListByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Replace godoc
// @Summary Replace an employee's declared availability
// @Tags Availabilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param payload body dto.ReplaceAvailabilityRequest true "Availability entries"
// @Success 200 {object} response.Envelope
// @Router /employees/{id}/availabilities [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	items, err := h.availabilities.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
