package middleware

import (
	"net/http"
	"strings"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/jwtutil"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// RequireRole checks the caller's stored Profile against the required role and
// loads the role-specific row. A profile or role row that should exist but
// does not is corrupt state: the request fails with a forced-logout response
// and is never repaired here.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			userID, ok := c.Get("user_id").(uint)
			if !ok {
				log.Error("Failed to get user ID from context")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			var profile model.Profile
			if result := database.GetDB().Where("user_id = ?", userID).First(&profile); result.Error != nil {
				log.Error("Profile data missing for authenticated user", zap.Uint("user_id", userID))
				prometheus.RecordAuthError("profile_missing")
				prometheus.DecreaseActiveTokens()
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":  "profile data missing",
					"logout": true,
				})
			}

			if profile.Role != role {
				log.Warn("Role mismatch",
					zap.Uint("user_id", userID),
					zap.String("have", string(profile.Role)),
					zap.String("want", string(role)))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied for this role"})
			}

			switch role {
			case model.RoleFirm:
				var firm model.Firm
				if result := database.GetDB().Where("user_id = ?", userID).First(&firm); result.Error != nil {
					log.Error("Firm data missing for firm user", zap.Uint("user_id", userID))
					prometheus.RecordAuthError("role_row_missing")
					prometheus.DecreaseActiveTokens()
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error":  "firm data missing",
						"logout": true,
					})
				}
				c.Set("firm", firm)
			case model.RoleClient:
				var client model.Client
				if result := database.GetDB().Where("user_id = ?", userID).First(&client); result.Error != nil {
					log.Error("Client data missing for client user", zap.Uint("user_id", userID))
					prometheus.RecordAuthError("role_row_missing")
					prometheus.DecreaseActiveTokens()
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error":  "client data missing",
						"logout": true,
					})
				}
				c.Set("client", client)
			}

			return next(c)
		}
	}
}
