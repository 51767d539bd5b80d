package jobs

import (
	"log"
	"time"

	"greencycle-server/database"
	"greencycle-server/models"
	"greencycle-server/services"
)

// BalanceCacheJob opportunistically refreshes the advisory users.balance
// field for users with recent ledger activity. The cache is display-only;
// a stale value is harmless.
type BalanceCacheJob struct {
	ledger   *services.LedgerService
	stopChan chan bool
}

// NewBalanceCacheJob creates a new balance cache job
func NewBalanceCacheJob(ledger *services.LedgerService) *BalanceCacheJob {
	return &BalanceCacheJob{
		ledger:   ledger,
		stopChan: make(chan bool),
	}
}

// Start begins the balance cache job
func (j *BalanceCacheJob) Start() {
	go j.run()
	log.Println("🚀 Balance cache job started")
}

// Stop stops the balance cache job
func (j *BalanceCacheJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Balance cache job stopped")
}

// run executes the balance cache job
func (j *BalanceCacheJob) run() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.refreshRecentlyActive()
		case <-j.stopChan:
			return
		}
	}
}

// refreshRecentlyActive recomputes the cache for users with ledger entries
// in the last refresh window
func (j *BalanceCacheJob) refreshRecentlyActive() {
	var userIDs []uint
	err := database.DB.Model(&models.Transaction{}).
		Where("created_at > ?", time.Now().Add(-10*time.Minute)).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		log.Printf("❌ Error finding recently active users: %v", err)
		return
	}

	for _, userID := range userIDs {
		if err := j.ledger.RefreshBalanceCache(userID); err != nil {
			log.Printf("⚠️ Failed to refresh balance cache for user %d: %v", userID, err)
		}
	}

	if len(userIDs) > 0 {
		log.Printf("💰 Refreshed balance cache for %d recently active users", len(userIDs))
	}
}
