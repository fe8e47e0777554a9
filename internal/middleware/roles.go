package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/backend/internal/models"
)

// LandingRoute maps a role to the application surface it lands on after
// authentication. Unknown roles fall through to the customer surface.
func LandingRoute(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleRestaurant:
		return "/restaurant-dashboard"
	default:
		return "/"
	}
}

// RequireRole guards a route group so only the given roles may enter. Role is
// a standing constraint, not a one-time redirect: a restaurant session
// hitting a customer surface is pushed back to its own landing route on
// every attempt.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "insufficient role",
				"redirect_to": LandingRoute(role),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
