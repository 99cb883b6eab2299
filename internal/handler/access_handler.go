package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// AccessHandler exposes user access management. All routes are admin-only;
// the service additionally enforces the self-lockout and last-admin rules.
type AccessHandler struct {
	access *service.AccessService
}

func NewAccessHandler(access *service.AccessService) *AccessHandler {
	return &AccessHandler{access: access}
}

// List godoc
// @Summary List users and their roles
// @Tags Access
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /access/users [get]
func (h *AccessHandler) List(c *gin.Context) {
	list, err := h.access.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Create godoc
// @Summary Provision a user with an initial role
// @Tags Access
// @Accept json
// @Produce json
// @Param payload body models.CreateUserInput true "User payload"
// @Success 201 {object} response.Envelope
// @Router /access/users [post]
func (h *AccessHandler) Create(c *gin.Context) {
	var input models.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	created, err := h.access.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags Access
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body models.UpdateRoleInput true "Role payload"
// @Success 200 {object} response.Envelope
// @Router /access/users/{id}/role [put]
func (h *AccessHandler) UpdateRole(c *gin.Context) {
	var input models.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	updated, err := h.access.UpdateRole(c.Request.Context(), actorID(c), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Remove a user's access or delete the account
// @Tags Access
// @Produce json
// @Param id path string true "User ID"
// @Param mode query string false "access (default) or user"
// @Success 204
// @Router /access/users/{id} [delete]
func (h *AccessHandler) Delete(c *gin.Context) {
	if err := h.access.Delete(c.Request.Context(), actorID(c), c.Param("id"), c.Query("mode")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
