package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greencycle-server/database"
	"greencycle-server/models"
	"greencycle-server/services"
)

// RegisterCollectorRoutes registers routes for collectors working reports
func RegisterCollectorRoutes(router *gin.RouterGroup) {
	router.GET("/pending-reports", getPendingReports)
	router.GET("/my-collections", getMyCollections)
	router.POST("/reports/:id/accept", acceptReport)
	router.POST("/reports/:id/complete", completeReport)
}

func parseReportID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return 0, false
	}
	return uint(id), true
}

// getPendingReports lists reports waiting for a collector, oldest first
func getPendingReports(c *gin.Context) {
	var reports []models.WasteReport
	if err := database.DB.Where("status = ?", models.ReportStatusPending).
		Preload("Reporter").
		Order("created_at ASC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reports":     reports,
		"total_count": len(reports),
	})
}

// getMyCollections lists reports assigned to the current collector
func getMyCollections(c *gin.Context) {
	userID := c.GetUint("user_id")

	var reports []models.WasteReport
	if err := database.DB.Where("collector_id = ?", userID).
		Preload("Reporter").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reports":     reports,
		"total_count": len(reports),
	})
}

// acceptReport claims a pending report for the current collector
func acceptReport(c *gin.Context) {
	reportID, ok := parseReportID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	report, err := newLifecycleService().AcceptReport(reportID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Report is no longer available"})
		default:
			log.Printf("❌ Failed to accept report %d: %v", reportID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept report"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report accepted",
		"report":  report,
	})
}

// completeReport settles a report the collector is working on. An optional
// base64 photo is run through image verification and the verdict is stored
// alongside the report.
func completeReport(c *gin.Context) {
	reportID, ok := parseReportID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req struct {
		ImageBase64  *string                    `json:"image_base64"`
		ImageURL     *string                    `json:"image_url"`
		Verification *models.VerificationResult `json:"verification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verification := req.Verification
	if verification == nil && req.ImageBase64 != nil {
		var report models.WasteReport
		if err := database.DB.First(&report, reportID).Error; err == nil {
			verifier := services.NewVerificationService()
			result, err := verifier.VerifyImage(*req.ImageBase64, report.WasteType, report.Amount)
			if err != nil {
				log.Printf("⚠️ Image verification failed for report %d: %v", reportID, err)
			} else {
				verification = result
			}
		}
	}

	report, _, points, err := newLifecycleService().CompleteReport(reportID, userID, verification, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Report has already been completed"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Report cannot be completed from its current status"})
		default:
			log.Printf("❌ Failed to complete report %d: %v", reportID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete report"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Report completed",
		"report":          report,
		"points_rewarded": points,
	})
}
