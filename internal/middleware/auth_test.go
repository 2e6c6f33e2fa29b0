package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

func performWithRole(role string, required string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	r := gin.New()

	r.Use(func(c *gin.Context) {
		c.Set(ContextUserRole, role)
	})
	r.PATCH("/me/bookings/:id/confirm", RequireRole(required), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPatch, "/me/bookings/1/confirm", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	w := performWithRole(models.RoleVeterinarian, models.RoleVeterinarian)
	assert.Equal(t, http.StatusOK, w.Code)
}

// Confirmar agendamento é ato do veterinário; o tutor que tenta pelo
// mesmo endpoint leva 403 antes de chegar no handler.
func TestRequireRole_RejectsOtherRoles(t *testing.T) {
	for _, role := range []string{models.RoleOwner, models.RoleAdmin} {
		w := performWithRole(role, models.RoleVeterinarian)
		assert.Equal(t, http.StatusForbidden, w.Code, "papel %q não confirma", role)
		assert.Contains(t, w.Body.String(), "insufficient_role")
	}
}
