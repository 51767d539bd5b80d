package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greencycle-server/database"
	"greencycle-server/services"
)

// RegisterTransactionRoutes registers point ledger routes on the protected
// group
func RegisterTransactionRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", getTransactions)
	router.GET("/balance", getBalance)
}

// getTransactions returns the current user's ledger history, newest first
func getTransactions(c *gin.Context) {
	userID := c.GetUint("user_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := services.NewLedgerService(database.DB).ListByUser(userID, limit)
	if err != nil {
		log.Printf("❌ Failed to list transactions for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": entries,
		"total_count":  len(entries),
	})
}

// getBalance folds the user's ledger into their current point balance
func getBalance(c *gin.Context) {
	userID := c.GetUint("user_id")

	balance, err := services.NewLedgerService(database.DB).ComputeBalance(userID)
	if err != nil {
		log.Printf("❌ Failed to compute balance for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
	})
}
