package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"greencycle-server/config"
	"greencycle-server/database"
	"greencycle-server/models"
	"greencycle-server/services"
	ws "greencycle-server/websocket"
)

// collectorHub receives new-report broadcasts; set once at startup
var collectorHub *ws.Hub

// InitCollectorHub wires the WebSocket hub used for the collector live feed
func InitCollectorHub(hub *ws.Hub) {
	collectorHub = hub
}

func newLifecycleService() *services.LifecycleService {
	ledger := services.NewLedgerService(database.DB)
	notifier := services.NewNotificationService(database.DB)
	return services.NewLifecycleService(database.DB, ledger, notifier, config.AppConfig.Rewards)
}

// RegisterReportRoutes registers waste report routes for reporters
func RegisterReportRoutes(router *gin.RouterGroup) {
	router.POST("", createReport)
	router.POST("/", createReport)
	router.POST("/upload", uploadReportPhoto)
	router.GET("/my-reports", getMyReports)
	router.GET("/:id", getReport)
}

// createReport submits a new waste report and rewards the reporter the flat
// submission points
func createReport(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.WasteReportCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, entry, err := newLifecycleService().SubmitReport(userID, req)
	if err != nil {
		log.Printf("❌ Failed to create waste report for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	// Push the new report to connected collectors
	if collectorHub != nil {
		collectorHub.BroadcastNewReport(report)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Waste report created successfully",
		"report":        report,
		"points_earned": entry.Amount,
	})
}

// uploadReportPhoto uploads a report image to Cloudinary and returns its URL
func uploadReportPhoto(c *gin.Context) {
	userID := c.GetUint("user_id")

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	uploads, err := services.NewUploadService()
	if err != nil {
		log.Printf("❌ Upload service unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload is not configured"})
		return
	}

	url, err := uploads.UploadReportPhoto(c.Request.Context(), userID, header)
	if err != nil {
		log.Printf("❌ Report photo upload failed for user %d: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"image_url": url,
	})
}

// getMyReports returns all waste reports created by the current user
func getMyReports(c *gin.Context) {
	userID := c.GetUint("user_id")

	var reports []models.WasteReport
	if err := database.DB.Where("reporter_id = ?", userID).
		Preload("Collector").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reports":     reports,
		"total_count": len(reports),
	})
}

// getReport returns a specific waste report by ID
func getReport(c *gin.Context) {
	reportID := c.Param("id")
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var report models.WasteReport
	if err := database.DB.Where("id = ?", reportID).
		Preload("Reporter").
		Preload("Collector").
		First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	// Reporters see their own reports; collectors and admins see everything
	if report.ReporterID != userID && role == string(models.RoleReporter) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}
