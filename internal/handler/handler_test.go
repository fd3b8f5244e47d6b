package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/handler"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/middleware"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest swaps the global DB for an in-memory SQLite database and restores
// it on cleanup
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test db handle: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	old := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = old
		sqlDB.Close()
	})
	return db
}

// newEcho builds an echo instance with the same route table as cmd/main.go
func newEcho() *echo.Echo {
	e := echo.New()

	e.GET("/health", handler.HealthCheck)
	e.GET("/", handler.Home)

	e.POST("/register", handler.Register)
	e.POST("/login", handler.Login)
	e.POST("/logout", handler.Logout)

	e.GET("/internships", handler.ListInternships)
	e.GET("/internship/:id", handler.InternshipDetail)
	e.GET("/firm/profile/:id", handler.FirmProfile)

	student := e.Group("", middleware.AuthMiddleware, middleware.RequireRole(model.RoleStudent))
	student.GET("/student/dashboard", handler.StudentDashboard)
	student.GET("/internship/apply/:id", handler.ApplyForm)
	student.POST("/internship/apply/:id", handler.Apply)
	student.POST("/media/resume", handler.UploadResume)

	firm := e.Group("/firm", middleware.AuthMiddleware, middleware.RequireRole(model.RoleFirm))
	firm.GET("/dashboard", handler.FirmDashboard)
	firm.GET("/post-internship", handler.PostInternshipForm)
	firm.POST("/post-internship", handler.PostInternship)
	firm.POST("/internship/:id/delete", handler.DeleteInternship)
	firm.GET("/internship/:id/applicants", handler.ViewApplicants)
	firm.POST("/approve_project/:id", handler.ApproveProject)
	firm.POST("/media/logo", handler.UploadLogo)

	client := e.Group("/client", middleware.AuthMiddleware, middleware.RequireRole(model.RoleClient))
	client.GET("/dashboard", handler.ClientDashboard)
	client.POST("/dashboard", handler.SubmitProject)

	authed := e.Group("", middleware.AuthMiddleware)
	authed.GET("/notifications", handler.ListNotifications)
	authed.POST("/notifications/:id/read", handler.MarkNotificationRead)
	authed.GET("/media/:kind/:key", handler.DownloadMedia)

	return e
}

// createUser inserts a user with the given role plus its role-specific row
// and returns the user and a bearer token
func createUser(t *testing.T, db *gorm.DB, username string, role model.Role) (model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := model.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := db.Create(&model.Profile{UserID: user.ID, Role: role}).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	switch role {
	case model.RoleFirm:
		if err := db.Create(&model.Firm{UserID: user.ID, Name: username + " Constructions", Location: "Hyderabad"}).Error; err != nil {
			t.Fatalf("failed to create firm: %v", err)
		}
	case model.RoleClient:
		if err := db.Create(&model.Client{UserID: user.ID, Name: username}).Error; err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// firmFor returns the Firm row owned by the given user
func firmFor(t *testing.T, db *gorm.DB, userID uint) model.Firm {
	t.Helper()
	var firm model.Firm
	if err := db.Where("user_id = ?", userID).First(&firm).Error; err != nil {
		t.Fatalf("failed to load firm: %v", err)
	}
	return firm
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// itoa formats a row ID for use in a request path
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// decodeBody unmarshals a JSON response body
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
