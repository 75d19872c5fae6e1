package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/service"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
	"github.com/profiremanager/pfm-api/pkg/response"
)

// ShiftTypeHandler exposes shift type endpoints.
type ShiftTypeHandler struct {
	shiftTypes *service.ShiftTypeService
}

// NewShiftTypeHandler constructs a ShiftTypeHandler.
func NewShiftTypeHandler(shiftTypes *service.ShiftTypeService) *ShiftTypeHandler {
	return &ShiftTypeHandler{shiftTypes: shiftTypes}
}

// List godoc
// @Summary List shift types
// @Tags ShiftTypes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /shift-types [get]
func (h *ShiftTypeHandler) List(c *gin.Context) {
	items, err := h.shiftTypes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get shift type by id
// @Tags ShiftTypes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift type ID"
// @Success 200 {object} response.Envelope
// @Router /shift-types/{id} [get]
func (h *ShiftTypeHandler) Get(c *gin.Context) {
	item, err := h.shiftTypes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Define a new shift type
// @Tags ShiftTypes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateShiftTypeRequest true "Shift type payload"
// @Success 201 {object} response.Envelope
// @Router /shift-types [post]
func (h *ShiftTypeHandler) Create(c *gin.Context) {
	var req dto.CreateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.shiftTypes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a shift type
// @Tags ShiftTypes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift type ID"
// @Param payload body dto.UpdateShiftTypeRequest true "Shift type payload"
// @Success 200 {object} response.Envelope
// @Router /shift-types/{id} [put]
func (h *ShiftTypeHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.shiftTypes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a shift type and its assignments
// @Tags ShiftTypes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift type ID"
// @Success 204
// @Router /shift-types/{id} [delete]
func (h *ShiftTypeHandler) Delete(c *gin.Context) {
	if err := h.shiftTypes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
