package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
)

const currentUserKey = "current_user"

// TokenLifetime is how long an issued access token stays valid
const TokenLifetime = 24 * time.Hour

// GenerateToken issues a signed HMAC access token for the given user.
// The token carries only the user ID; roles are deliberately not embedded
// so authorization always reflects current group membership.
func GenerateToken(cfg *config.Config, userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": now.Unix(),
		"exp": now.Add(TokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseToken validates the token signature and returns the user ID it carries
func parseToken(cfg *config.Config, tokenStr string) (uint, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(sub), true
}

// RequireAuth validates the Bearer token and loads the authenticated user,
// including role membership, fresh from the database for this request.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or invalid Authorization header",
				},
			})
			c.Abort()
			return
		}

		userID, ok := parseToken(config.GetConfig(), strings.TrimPrefix(header, "Bearer "))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Preload("Roles").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Account no longer exists",
				},
			})
			c.Abort()
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// RequireRoles allows the request through only if the authenticated user
// holds at least one of the given roles. Must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
		c.Abort()
	}
}

// CurrentUser extracts the authenticated user from the Gin context
func CurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_USER", Message: "No authenticated user in context"}
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, &AuthError{Code: "INVALID_USER", Message: "Authenticated user has unexpected type"}
	}
	return user, nil
}

// SetCurrentUser stores the authenticated user in the Gin context
// (primarily for testing)
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
