package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListInternships returns every open posting
func ListInternships(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var internships []model.Internship
	if result := database.GetDB().Order("created_at desc").Find(&internships); result.Error != nil {
		log.Error("Failed to retrieve internships", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve internships"})
	}

	return c.JSON(http.StatusOK, echo.Map{"internships": internships})
}

// InternshipDetail returns one posting with its firm
func InternshipDetail(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordInternshipOperation("detail")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid internship ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var internship model.Internship
	if result := database.GetDB().Preload("Firm").First(&internship, id); result.Error != nil {
		log.Error("Internship not found", zap.Uint64("internship_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "internship not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"internship": internship})
}
