package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"greencycle-server/models"
)

// RewardService handles point redemptions against the reward catalog. The
// balance check and the spend happen under one transaction snapshot so a
// user cannot redeem past their earnings.
type RewardService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
}

func NewRewardService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService) *RewardService {
	return &RewardService{db: db, ledger: ledger, notifier: notifier}
}

// ListActive returns the redeemable catalog
func (s *RewardService) ListActive() ([]models.RewardItem, error) {
	var rewards []models.RewardItem
	if err := s.db.Where("active = ?", true).Order("point_cost ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Redeem spends points on a catalog item by appending a `redeemed` ledger
// entry. Returns ErrInsufficientBalance when the ledger fold cannot cover
// the cost.
func (s *RewardService) Redeem(userID, rewardID uint) (*models.Transaction, error) {
	var entry *models.Transaction
	var reward models.RewardItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND active = ?", rewardID, true).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		balance, err := s.ledger.ComputeBalanceTx(tx, userID)
		if err != nil {
			return err
		}
		if balance < reward.PointCost {
			return ErrInsufficientBalance
		}

		entry, err = s.ledger.AppendTx(tx, userID, models.TransactionRedeemed, reward.PointCost,
			fmt.Sprintf("Redeemed reward: %s", reward.Name))
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.ledger.RefreshBalanceCache(userID); err != nil {
		log.Printf("⚠️ Failed to refresh balance cache for user %d: %v", userID, err)
	}

	if err := s.notifier.Notify(userID,
		"Reward Redeemed",
		fmt.Sprintf("You redeemed %s for %d points.", reward.Name, reward.PointCost),
		"reward_redeemed",
		map[string]interface{}{"reward_id": reward.ID, "points_spent": reward.PointCost},
		nil); err != nil {
		log.Printf("⚠️ Failed to send redemption notification to user %d: %v", userID, err)
	}

	return entry, nil
}
