package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greencycle-server/database"
	"greencycle-server/models"
)

// RegisterNotificationRoutes registers in-app notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("", getNotifications)
	router.GET("/", getNotifications)
	router.GET("/unread-count", getUnreadCount)
	router.POST("/mark-read/:id", markNotificationRead)
	router.POST("/mark-all-read", markAllNotificationsRead)
	router.POST("/register-token", registerPushToken)
}

// getNotifications returns the current user's notifications, newest first
func getNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
	})
}

// getUnreadCount returns the number of unread notifications
func getUnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	var count int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"unread_count": count,
	})
}

// markNotificationRead marks one of the user's notifications as read
func markNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	notificationID := c.Param("id")

	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// markAllNotificationsRead marks every notification of the user as read
func markAllNotificationsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// registerPushToken stores an Expo push token for the current user
func registerPushToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := models.PushToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
		Active:   true,
	}

	// Re-registering the same token reactivates it for this user
	if err := database.DB.Where("token = ?", req.Token).
		Assign(models.PushToken{UserID: userID, Platform: req.Platform, Active: true}).
		FirstOrCreate(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register push token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
