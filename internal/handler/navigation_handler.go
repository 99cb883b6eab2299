package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/access"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// NavigationHandler returns the navigation visible to the caller's role,
// plus the landing path a client should open after login.
type NavigationHandler struct {
	authEnabled bool
}

func NewNavigationHandler(authEnabled bool) *NavigationHandler {
	return &NavigationHandler{authEnabled: authEnabled}
}

// Get godoc
// @Summary Navigation items for the caller's role
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) Get(c *gin.Context) {
	role := actorRole(c)
	items := access.FilterNavItemsByRole(access.DefaultNavItems(), role, h.authEnabled)

	response.JSON(c, http.StatusOK, gin.H{
		"items":       items,
		"defaultPath": access.DefaultPathForRole(role),
	})
}
