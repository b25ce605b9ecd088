package middleware

import (
	"net/http"

	"lesson-reservations/internal/auth"
	domain "lesson-reservations/internal/domain/booking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware.
const (
	ContextUserID        = "auth_user_id"
	ContextUserRole      = "auth_user_role"
	ContextParticipantID = "auth_participant_id"
)

// Authenticate verifies the bearer token and stores the caller's identity
// on the gin context.
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing authorization token",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, domain.UserRole(claims.Role))
		if claims.ParticipantID != nil {
			c.Set(ContextParticipantID, *claims.ParticipantID)
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. Must run after
// Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists || role.(domain.UserRole) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "admin role required",
			})
			return
		}
		c.Next()
	}
}

// ParticipantID returns the participant linked to the authenticated caller.
func ParticipantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextParticipantID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
