package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StudentDashboard lists the internships still available to the caller along
// with their submitted applications. Filters compose with AND; a missing
// query parameter means no constraint for that dimension.
func StudentDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("list")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	db := database.GetDB()
	query := db.Model(&model.Internship{})

	if location := c.QueryParam("location"); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if mode := c.QueryParam("mode"); mode != "" {
		query = query.Where("mode = ?", mode)
	}
	switch c.QueryParam("stipend") {
	case "paid":
		query = query.Where("stipend > 0")
	case "unpaid":
		query = query.Where("stipend = 0")
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	// Hide internships the student already applied to
	applied := db.Model(&model.Application{}).Select("internship_id").Where("student_id = ?", userID)
	query = query.Where("id NOT IN (?)", applied)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var available []model.Internship
	if result := query.Order("created_at desc").Find(&available); result.Error != nil {
		log.Error("Failed to retrieve internships", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve internships"})
	}

	var applications []model.Application
	if result := db.Where("student_id = ?", userID).Order("applied_at desc").Find(&applications); result.Error != nil {
		log.Error("Failed to retrieve applications", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve applications"})
	}

	// Distinct locations for the filter dropdown
	var locations []string
	db.Model(&model.Internship{}).Distinct().Pluck("location", &locations)

	log.Info("Student dashboard loaded",
		zap.Uint("user_id", userID),
		zap.Int("available", len(available)),
		zap.Int("applications", len(applications)))

	return c.JSON(http.StatusOK, echo.Map{
		"available_internships": available,
		"applications":          applications,
		"locations":             locations,
	})
}

// ApplyRequest defines the structure for internship application submissions.
// Internship and student identity are injected server-side, never bound from
// the request body.
type ApplyRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	CollegeName   string  `json:"college_name"`
	YearOfPassing int     `json:"year_of_passing"`
	CGPA          float64 `json:"cgpa"`
	Achievements  string  `json:"achievements"`
	ResumeKey     string  `json:"resume_key"`
}

// Validate checks the application fields
func (r *ApplyRequest) Validate() string {
	if strings.TrimSpace(r.FirstName) == "" {
		return "first_name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		return "last_name is required"
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return "a valid email is required"
	}
	if strings.TrimSpace(r.PhoneNumber) == "" || len(r.PhoneNumber) > 15 {
		return "a valid phone_number is required"
	}
	if strings.TrimSpace(r.CollegeName) == "" {
		return "college_name is required"
	}
	if r.YearOfPassing < 1900 {
		return "year_of_passing is required"
	}
	if r.CGPA < 0 || r.CGPA > 10 {
		return "cgpa must be between 0 and 10"
	}
	if r.ResumeKey == "" {
		return "resume_key is required, upload the resume first"
	}
	return ""
}

// ApplyForm returns the internship being applied to, as context for the
// application form
func ApplyForm(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid internship ID"})
	}

	var internship model.Internship
	if result := database.GetDB().First(&internship, id); result.Error != nil {
		log.Error("Internship not found", zap.Uint64("internship_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "internship not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"internship": internship})
}

// Apply records a student's application to an internship
func Apply(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("apply")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid internship ID"})
	}

	var internship model.Internship
	if result := database.GetDB().First(&internship, id); result.Error != nil {
		log.Error("Internship not found", zap.Uint64("internship_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "internship not found"})
	}

	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse application request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if msg := req.Validate(); msg != "" {
		log.Error("Invalid application data", zap.Uint64("internship_id", id), zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	application := model.Application{
		InternshipID:  internship.ID,
		StudentID:     userID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		CollegeName:   req.CollegeName,
		YearOfPassing: req.YearOfPassing,
		CGPA:          req.CGPA,
		Achievements:  req.Achievements,
		ResumeKey:     req.ResumeKey,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&application); result.Error != nil {
		log.Error("Failed to create application",
			zap.Uint64("internship_id", id),
			zap.Uint("student_id", userID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to submit application"})
	}

	// Tell the posting firm; the application itself is already committed, so a
	// failed notification is only logged
	var firm model.Firm
	if result := database.GetDB().First(&firm, internship.FirmID); result.Error == nil {
		notifyUser(c, firm.UserID, "New application for "+internship.Title+" from "+req.FirstName+" "+req.LastName)
	}

	log.Info("Application submitted",
		zap.Uint("application_id", application.ID),
		zap.Uint64("internship_id", id),
		zap.Uint("student_id", userID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "application submitted successfully",
		"application": application,
	})
}
