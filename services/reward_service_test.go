package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"greencycle-server/models"
)

func newTestRewardService(db *gorm.DB) *RewardService {
	ledger := NewLedgerService(db)
	notifier := NewNotificationService(db)
	return NewRewardService(db, ledger, notifier)
}

func createTestReward(t *testing.T, db *gorm.DB, name string, cost int) *models.RewardItem {
	t.Helper()
	reward := models.RewardItem{Name: name, PointCost: cost, Active: true}
	require.NoError(t, db.Create(&reward).Error)
	return &reward
}

func TestRedeem_SpendsPoints(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "redeemer@example.com", models.RoleReporter)
	reward := createTestReward(t, db, "Tote Bag", 50)

	_, err := ledger.Append(user.ID, models.TransactionEarnedCollection, 75, "report collected")
	require.NoError(t, err)

	entry, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionRedeemed, entry.Type)
	assert.Equal(t, 50, entry.Amount)

	balance, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, balance)
}

func TestRedeem_InsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "poor@example.com", models.RoleReporter)
	reward := createTestReward(t, db, "Transit Pass", 250)

	_, err := ledger.Append(user.ID, models.TransactionEarnedReport, 10, "report submitted")
	require.NoError(t, err)

	_, err = svc.Redeem(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The failed redemption left no ledger entry behind.
	balance, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
}

func TestRedeem_UnknownOrInactiveReward(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "user@example.com", models.RoleReporter)

	_, err := svc.Redeem(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRewardNotFound)

	inactive := models.RewardItem{Name: "Retired", PointCost: 10, Active: false}
	require.NoError(t, db.Create(&inactive).Error)

	_, err = svc.Redeem(user.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestListActive_SkipsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)

	createTestReward(t, db, "Coffee Voucher", 75)
	createTestReward(t, db, "Tote Bag", 100)
	inactive := models.RewardItem{Name: "Retired", PointCost: 10, Active: false}
	require.NoError(t, db.Create(&inactive).Error)

	rewards, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	// Cheapest first.
	assert.Equal(t, "Coffee Voucher", rewards[0].Name)
}
