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

// ProjectRequest defines the structure for house project submissions. Client
// identity, status and firm assignment are controlled server-side.
type ProjectRequest struct {
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	AreaSqft    int    `json:"area_sqft"`
	Budget      int64  `json:"budget"`
}

// Validate checks the project fields
func (r *ProjectRequest) Validate() string {
	if strings.TrimSpace(r.ProjectName) == "" {
		return "project_name is required"
	}
	if strings.TrimSpace(r.Description) == "" {
		return "description is required"
	}
	if strings.TrimSpace(r.Location) == "" {
		return "location is required"
	}
	if r.AreaSqft < 0 {
		return "area_sqft must not be negative"
	}
	if r.Budget < 0 {
		return "budget must not be negative"
	}
	return ""
}

// ClientDashboard lists the client's house projects and the registered firms
func ClientDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("list")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	db := database.GetDB()
	defer prometheus.TrackDBOperation("query")(time.Now())

	var projects []model.HouseProject
	if result := db.Where("client_id = ?", userID).Order("created_at desc").Find(&projects); result.Error != nil {
		log.Error("Failed to retrieve house projects", zap.Uint("user_id", userID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve projects"})
	}

	var firms []model.Firm
	if result := db.Order("name").Find(&firms); result.Error != nil {
		log.Error("Failed to retrieve firms", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve firms"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"house_projects": projects,
		"firms":          firms,
	})
}

// SubmitProject records a new house project request for the calling client.
// New projects always start pending with no firm assigned.
func SubmitProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("submit")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse project request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if msg := req.Validate(); msg != "" {
		log.Error("Invalid project data", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	project := model.HouseProject{
		ClientID:    userID,
		Status:      model.ProjectPending,
		ProjectName: req.ProjectName,
		Description: req.Description,
		Location:    req.Location,
		AreaSqft:    req.AreaSqft,
		Budget:      req.Budget,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&project); result.Error != nil {
		log.Error("Failed to create house project",
			zap.Uint("user_id", userID),
			zap.String("project_name", req.ProjectName),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to submit project"})
	}

	log.Info("House project submitted",
		zap.Uint("project_id", project.ID),
		zap.Uint("client_id", userID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "house project submitted successfully",
		"project": project,
	})
}

// ApproveProjectRequest defines the structure for project approval requests
type ApproveProjectRequest struct {
	ApprovalMessage string `json:"approval_message"`
}

// ApproveProject lets a firm claim an unassigned pending house project. The
// transition is a single conditional update guarded on the pending status, so
// concurrent approvals cannot reassign ownership: one wins, the rest see a
// conflict.
func ApproveProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("approve")

	firm, ok := firmFromContext(c)
	if !ok {
		log.Error("Failed to get firm from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project ID"})
	}

	var req ApproveProjectRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse approval request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if strings.TrimSpace(req.ApprovalMessage) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approval_message is required"})
	}

	// The same text goes into both message fields; they are kept separate in
	// the schema pending a product decision on whether they diverge
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.HouseProject{}).
		Where("id = ? AND status = ? AND firm_id IS NULL", id, model.ProjectPending).
		Updates(map[string]interface{}{
			"status":           model.ProjectApproved,
			"firm_id":          firm.ID,
			"approval_message": req.ApprovalMessage,
			"firm_response":    req.ApprovalMessage,
		})
	if result.Error != nil {
		log.Error("Failed to approve project", zap.Uint64("project_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to approve project"})
	}
	if result.RowsAffected == 0 {
		var project model.HouseProject
		if lookup := database.GetDB().First(&project, id); lookup.Error != nil {
			log.Warn("Project not found", zap.Uint64("project_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		log.Warn("Project already handled",
			zap.Uint64("project_id", id),
			zap.String("status", string(project.Status)))
		return c.JSON(http.StatusConflict, echo.Map{"error": "project is no longer pending"})
	}

	var project model.HouseProject
	if lookup := database.GetDB().First(&project, id); lookup.Error == nil {
		notifyUser(c, project.ClientID, "Your project "+project.ProjectName+" was approved by "+firm.Name)
	}

	log.Info("Project approved",
		zap.Uint64("project_id", id),
		zap.Uint("firm_id", firm.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "project approved",
		"project": project,
	})
}
