package handler

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

// Home resolves the landing page or the caller's dashboard. Anonymous callers
// get the landing payload. Authenticated callers are dispatched by role; a
// missing Profile or role row forces a logout instead of being repaired.
func Home(c echo.Context) error {
	log := logger.FromContext(c)

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusOK, echo.Map{"page": "home"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return c.JSON(http.StatusOK, echo.Map{"page": "home"})
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		// Expired or bogus token on the landing page is not an error
		return c.JSON(http.StatusOK, echo.Map{"page": "home"})
	}

	var profile model.Profile
	if result := database.GetDB().Where("user_id = ?", claims.UserID).First(&profile); result.Error != nil {
		log.Error("Profile data missing at home dispatch", zap.Uint("user_id", claims.UserID))
		prometheus.RecordAuthError("profile_missing")
		prometheus.DecreaseActiveTokens()
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":  "profile data missing",
			"logout": true,
		})
	}

	switch profile.Role {
	case model.RoleFirm:
		var firm model.Firm
		if result := database.GetDB().Where("user_id = ?", claims.UserID).First(&firm); result.Error != nil {
			log.Error("Firm data missing at home dispatch", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("role_row_missing")
			prometheus.DecreaseActiveTokens()
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":  "firm data missing",
				"logout": true,
			})
		}
	case model.RoleClient:
		var client model.Client
		if result := database.GetDB().Where("user_id = ?", claims.UserID).First(&client); result.Error != nil {
			log.Error("Client data missing at home dispatch", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("role_row_missing")
			prometheus.DecreaseActiveTokens()
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":  "client data missing",
				"logout": true,
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"page":      "dashboard",
		"role":      profile.Role,
		"dashboard": dashboardRoute(profile.Role),
	})
}
