package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/jwtutil"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest defines the structure for account registration requests
type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// Validate checks the registration fields
func (r *RegisterRequest) Validate() string {
	if strings.TrimSpace(r.Username) == "" {
		return "username is required"
	}
	if r.Password == "" {
		return "password is required"
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return "a valid email is required"
	}
	if !r.Role.Valid() {
		return "role must be one of student, firm, client"
	}
	return ""
}

// Register creates a User, its Profile and the role-specific row in a single
// transaction. Either all three rows exist afterwards or none do.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if msg := req.Validate(); msg != "" {
		log.Error("Invalid registration data", zap.String("username", req.Username), zap.String("reason", msg))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	// Check if the username is taken before opening the transaction
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.User
	if result := database.GetDB().Where("username = ?", req.Username).First(&existing); result.Error == nil {
		log.Error("Username already exists", zap.String("username", req.Username))
		prometheus.RecordAuthError("username_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating user, please try again"})
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Profile{UserID: user.ID, Role: req.Role}).Error; err != nil {
			return err
		}
		switch req.Role {
		case model.RoleFirm:
			// Placeholder identity, edited later from the firm dashboard
			return tx.Create(&model.Firm{UserID: user.ID, Name: "Unnamed Firm", Location: "Unknown"}).Error
		case model.RoleClient:
			return tx.Create(&model.Client{UserID: user.ID, Name: req.Username}).Error
		}
		return nil
	})
	if err != nil {
		log.Error("Registration transaction failed",
			zap.String("username", req.Username),
			zap.String("role", string(req.Role)),
			zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error creating user, please try again"})
	}

	log.Info("User registered",
		zap.String("username", user.Username),
		zap.String("role", string(req.Role)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "account created successfully",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"role":     req.Role,
		},
	})
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a JWT with the user's role. Valid
// credentials without a Profile row are treated as a corrupt account and no
// token is issued.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("username = ?", req.Username).First(&user); result.Error != nil {
		log.Error("User not found", zap.String("username", req.Username))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	var profile model.Profile
	if result := database.GetDB().Where("user_id = ?", user.ID).First(&profile); result.Error != nil {
		log.Error("Profile data missing at login", zap.String("username", req.Username))
		prometheus.RecordAuthError("profile_missing")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":  "profile data missing",
			"logout": true,
		})
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, profile.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(profile.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token":     token,
		"dashboard": dashboardRoute(profile.Role),
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"role":     profile.Role,
		},
	})
}

// Logout ends the session. Tokens are stateless, so the client drops the
// token; only the active token gauge is adjusted here.
func Logout(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DecreaseActiveTokens()
	log.Info("User logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func dashboardRoute(role model.Role) string {
	switch role {
	case model.RoleStudent:
		return "/student/dashboard"
	case model.RoleFirm:
		return "/firm/dashboard"
	case model.RoleClient:
		return "/client/dashboard"
	}
	return "/"
}
