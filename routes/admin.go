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

// RegisterAdminRoutes registers admin-only routes. Runs behind
// AdminAuthMiddleware.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", getDashboardStats)
	router.GET("/reports", getAllReports)
	router.GET("/users", getAllUsers)
	router.POST("/reports/:id/complete", adminCompleteReport)
	router.DELETE("/users/:id", deleteUser)
}

// getDashboardStats returns aggregate counts for the admin dashboard
func getDashboardStats(c *gin.Context) {
	var totalUsers, totalReports, pendingReports, completedReports int64

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.WasteReport{}).Count(&totalReports)
	database.DB.Model(&models.WasteReport{}).
		Where("status = ?", models.ReportStatusPending).Count(&pendingReports)
	database.DB.Model(&models.WasteReport{}).
		Where("status IN ?", []models.WasteReportStatus{models.ReportStatusCompleted, models.ReportStatusVerified}).
		Count(&completedReports)

	var totalPointsIssued int64
	database.DB.Model(&models.Transaction{}).
		Where("type IN ?", []models.TransactionType{
			models.TransactionEarnedReport,
			models.TransactionEarnedCollection,
			models.TransactionEarnedCollect,
			models.TransactionReward,
		}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPointsIssued)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_users":         totalUsers,
			"total_reports":       totalReports,
			"pending_reports":     pendingReports,
			"completed_reports":   completedReports,
			"total_points_issued": totalPointsIssued,
		},
	})
}

// getAllReports lists every waste report, optionally filtered by status
func getAllReports(c *gin.Context) {
	query := database.DB.Preload("Reporter").Preload("Collector").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.WasteReport
	if err := query.Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reports":     reports,
		"total_count": len(reports),
	})
}

// getAllUsers lists every registered user
func getAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"users":       users,
		"total_count": len(users),
	})
}

// adminCompleteReport settles a report on behalf of the admin console. The
// acting collector is resolved (or created) from the admin's identity so a
// console-driven completion still satisfies the collector assignment rule.
// Completing a pending report this way accepts and completes it in one step.
func adminCompleteReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	email := c.GetString("email")
	fullName := c.GetString("full_name")

	actorID, err := services.NewActorService(database.DB).ResolveActor(email, fullName)
	if err != nil {
		log.Printf("❌ Failed to resolve acting collector for admin %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve acting collector"})
		return
	}

	var req struct {
		Verification *models.VerificationResult `json:"verification"`
		ImageURL     *string                    `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, _, points, err := newLifecycleService().CompleteReport(uint(reportID), actorID, req.Verification, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Report has already been completed"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Report cannot be completed from its current status"})
		default:
			log.Printf("❌ Admin failed to complete report %d: %v", reportID, err)
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

// deleteUser removes a user and everything owned by them in one transaction.
// Reports the user collected (but did not create) survive with their
// collector cleared.
func deleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := services.NewUserService(database.DB).DeleteUserCascade(uint(userID)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("❌ Failed to delete user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	log.Printf("✅ User %d deleted by admin", userID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}
