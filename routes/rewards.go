package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greencycle-server/database"
	"greencycle-server/services"
)

// RegisterRewardRoutes registers reward catalog routes
func RegisterRewardRoutes(router *gin.RouterGroup) {
	router.GET("", listRewards)
	router.GET("/", listRewards)
	router.POST("/:id/redeem", redeemReward)
}

func newRewardService() *services.RewardService {
	ledger := services.NewLedgerService(database.DB)
	notifier := services.NewNotificationService(database.DB)
	return services.NewRewardService(database.DB, ledger, notifier)
}

// listRewards returns the active reward catalog, cheapest first
func listRewards(c *gin.Context) {
	rewards, err := newRewardService().ListActive()
	if err != nil {
		log.Printf("❌ Failed to fetch rewards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rewards": rewards,
	})
}

// redeemReward spends points on a catalog item
func redeemReward(c *gin.Context) {
	userID := c.GetUint("user_id")

	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID"})
		return
	}

	entry, err := newRewardService().Redeem(userID, uint(rewardID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, services.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient points"})
		default:
			log.Printf("❌ Failed to redeem reward %d for user %d: %v", rewardID, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Reward redeemed successfully",
		"transaction":  entry,
		"points_spent": entry.Amount,
	})
}
