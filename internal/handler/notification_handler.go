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

// notifyUser records a notification for a user. The surrounding write has
// already committed, so failures here are logged and swallowed.
func notifyUser(c echo.Context, userID uint, message string) {
	log := logger.FromContext(c)
	notification := model.Notification{UserID: userID, Message: message}
	if result := database.GetDB().Create(&notification); result.Error != nil {
		log.Error("Failed to create notification",
			zap.Uint("user_id", userID),
			zap.Error(result.Error))
	}
}

// ListNotifications returns the caller's notifications, newest first
func ListNotifications(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var notifications []model.Notification
	if result := database.GetDB().Where("user_id = ?", userID).
		Order("created_at desc").Find(&notifications); result.Error != nil {
		log.Error("Failed to retrieve notifications", zap.Uint("user_id", userID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve notifications"})
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read.
// Ownership is part of the query filter.
func MarkNotificationRead(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification ID"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		log.Error("Failed to update notification", zap.Uint64("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
}
