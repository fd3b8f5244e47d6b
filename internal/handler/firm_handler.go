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

// firmFromContext returns the Firm row loaded by the RequireRole middleware
func firmFromContext(c echo.Context) (model.Firm, bool) {
	firm, ok := c.Get("firm").(model.Firm)
	return firm, ok
}

// FirmDashboard lists the firm's postings, their applicants and the house
// projects still open for approval
func FirmDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	firm, ok := firmFromContext(c)
	if !ok {
		log.Error("Failed to get firm from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}

	db := database.GetDB()
	defer prometheus.TrackDBOperation("query")(time.Now())

	var internships []model.Internship
	if result := db.Where("firm_id = ?", firm.ID).Order("created_at desc").Find(&internships); result.Error != nil {
		log.Error("Failed to retrieve internships", zap.Uint("firm_id", firm.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve internships"})
	}

	owned := db.Model(&model.Internship{}).Select("id").Where("firm_id = ?", firm.ID)
	var applicants []model.Application
	if result := db.Where("internship_id IN (?)", owned).Order("applied_at desc").Find(&applicants); result.Error != nil {
		log.Error("Failed to retrieve applicants", zap.Uint("firm_id", firm.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve applicants"})
	}

	// Projects not yet claimed by any firm
	var projects []model.HouseProject
	if result := db.Where("firm_id IS NULL AND status = ?", model.ProjectPending).
		Order("created_at desc").Find(&projects); result.Error != nil {
		log.Error("Failed to retrieve pending projects", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve projects"})
	}
	prometheus.UpdatePendingProjects(len(projects))

	log.Info("Firm dashboard loaded",
		zap.Uint("firm_id", firm.ID),
		zap.Int("internships", len(internships)),
		zap.Int("applicants", len(applicants)),
		zap.Int("pending_projects", len(projects)))

	return c.JSON(http.StatusOK, echo.Map{
		"firm":        firm,
		"internships": internships,
		"applicants":  applicants,
		"projects":    projects,
	})
}

// PostInternshipRequest defines the structure for internship posting requests.
// The owning firm is injected server-side and never bound from the body.
type PostInternshipRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	CompanyName      string `json:"company_name"`
	Responsibilities string `json:"responsibilities"`
	Requirements     string `json:"requirements"`
	Stipend          int64  `json:"stipend"`
	Duration         string `json:"duration"`
	Deadline         string `json:"deadline"` // YYYY-MM-DD
	Perks            string `json:"perks"`
	Mode             string `json:"mode"`
}

// Validate checks the posting fields and parses the deadline
func (r *PostInternshipRequest) Validate() (time.Time, string) {
	if strings.TrimSpace(r.Title) == "" {
		return time.Time{}, "title is required"
	}
	if strings.TrimSpace(r.Description) == "" {
		return time.Time{}, "description is required"
	}
	if strings.TrimSpace(r.Location) == "" {
		return time.Time{}, "location is required"
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		return time.Time{}, "company_name is required"
	}
	if r.Stipend < 0 {
		return time.Time{}, "stipend must not be negative"
	}
	if strings.TrimSpace(r.Mode) == "" {
		return time.Time{}, "mode is required"
	}
	deadline, err := time.Parse("2006-01-02", r.Deadline)
	if err != nil {
		return time.Time{}, "deadline must be a date in YYYY-MM-DD format"
	}
	return deadline, ""
}

// PostInternshipForm returns the firm context used to render the posting form
func PostInternshipForm(c echo.Context) error {
	firm, ok := firmFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"firm": firm})
}

// PostInternship creates a new internship owned by the caller's firm
func PostInternship(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("post")

	firm, ok := firmFromContext(c)
	if !ok {
		log.Error("Failed to get firm from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}

	var req PostInternshipRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse internship request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	deadline, msg := req.Validate()
	if msg != "" {
		log.Error("Invalid internship data", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	duration := req.Duration
	if duration == "" {
		duration = "6 months"
	}

	internship := model.Internship{
		FirmID:           firm.ID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		CompanyName:      req.CompanyName,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Stipend:          req.Stipend,
		Duration:         duration,
		Deadline:         deadline,
		Perks:            req.Perks,
		Mode:             req.Mode,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&internship); result.Error != nil {
		log.Error("Failed to create internship",
			zap.Uint("firm_id", firm.ID),
			zap.String("title", req.Title),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to post internship"})
	}

	log.Info("Internship posted",
		zap.Uint("internship_id", internship.ID),
		zap.Uint("firm_id", firm.ID),
		zap.String("title", internship.Title))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "internship posted successfully",
		"internship": internship,
	})
}

// DeleteInternship removes a posting. Ownership is part of the query filter,
// so someone else's internship simply reads as not found.
func DeleteInternship(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("delete")

	firm, ok := firmFromContext(c)
	if !ok {
		log.Error("Failed to get firm from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid internship ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Where("id = ? AND firm_id = ?", id, firm.ID).Delete(&model.Internship{})
	if result.Error != nil {
		log.Error("Failed to delete internship", zap.Uint64("internship_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete internship"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Internship not found or not owned by firm",
			zap.Uint64("internship_id", id),
			zap.Uint("firm_id", firm.ID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "internship not found"})
	}

	log.Info("Internship deleted", zap.Uint64("internship_id", id), zap.Uint("firm_id", firm.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "internship deleted"})
}

// ViewApplicants lists the applications submitted to one internship
func ViewApplicants(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("applicants")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid internship ID"})
	}

	var internship model.Internship
	if result := database.GetDB().First(&internship, id); result.Error != nil {
		log.Error("Internship not found", zap.Uint64("internship_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "internship not found"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var applicants []model.Application
	if result := database.GetDB().Where("internship_id = ?", id).Order("applied_at desc").Find(&applicants); result.Error != nil {
		log.Error("Failed to retrieve applicants", zap.Uint64("internship_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve applicants"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"internship": internship,
		"applicants": applicants,
	})
}

// FirmProfile returns a firm's public identity
func FirmProfile(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid firm ID"})
	}

	var firm model.Firm
	if result := database.GetDB().First(&firm, id); result.Error != nil {
		log.Error("Firm not found", zap.Uint64("firm_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "firm not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"firm": firm})
}
