package handler

import (
	"net/http"
	"path/filepath"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/mediastore"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	mediaKindResumes = "resumes"
	mediaKindLogos   = "firm_logos"
)

// storeUpload reads the multipart "file" field and stores it under the given
// prefix. File contents are opaque; only the extension is carried over.
func storeUpload(c echo.Context, prefix string) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := prefix + "/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := c.Request().Context()
	if err := mediastore.Active().Put(ctx, key, src, fileHeader.Size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// UploadResume stores a resume blob and returns the key to reference from an
// application
func UploadResume(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMediaOperation("upload_resume")

	key, err := storeUpload(c, mediaKindResumes)
	if err != nil {
		log.Error("Failed to store resume", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to store resume"})
	}

	log.Info("Resume stored", zap.String("key", key))
	return c.JSON(http.StatusCreated, echo.Map{"resume_key": key})
}

// UploadLogo stores a firm logo and records the key on the caller's Firm row
func UploadLogo(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMediaOperation("upload_logo")

	firm, ok := firmFromContext(c)
	if !ok {
		log.Error("Failed to get firm from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "firm data missing", "logout": true})
	}

	key, err := storeUpload(c, mediaKindLogos)
	if err != nil {
		log.Error("Failed to store logo", zap.Uint("firm_id", firm.ID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to store logo"})
	}

	if result := database.GetDB().Model(&model.Firm{}).
		Where("id = ?", firm.ID).Update("logo_key", key); result.Error != nil {
		log.Error("Failed to record logo key", zap.Uint("firm_id", firm.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record logo"})
	}

	log.Info("Firm logo stored", zap.Uint("firm_id", firm.ID), zap.String("key", key))
	return c.JSON(http.StatusCreated, echo.Map{"logo_key": key})
}

// DownloadMedia streams a stored blob back to the caller
func DownloadMedia(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMediaOperation("download")

	kind := c.Param("kind")
	if kind != mediaKindResumes && kind != mediaKindLogos {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "media not found"})
	}

	key := kind + "/" + c.Param("key")
	obj, contentType, err := mediastore.Active().Get(c.Request().Context(), key)
	if err != nil {
		log.Error("Media object not found", zap.String("key", key), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "media not found"})
	}
	defer obj.Close()

	return c.Stream(http.StatusOK, contentType, obj)
}
