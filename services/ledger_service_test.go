package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencycle-server/models"
)

func TestComputeBalance_FoldsSignedHistory(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "fold@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, models.TransactionEarnedReport, 10, "report submitted")
	require.NoError(t, err)
	_, err = ledger.Append(user.ID, models.TransactionEarnedCollection, 75, "report collected")
	require.NoError(t, err)
	_, err = ledger.Append(user.ID, models.TransactionRedeemed, 20, "redeemed voucher")
	require.NoError(t, err)

	balance, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 65, balance)
}

func TestComputeBalance_EmptyHistoryIsZero(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "empty@example.com", models.RoleReporter)

	balance, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestComputeBalance_ClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "clamp@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, models.TransactionEarnedReport, 10, "report submitted")
	require.NoError(t, err)
	_, err = ledger.Append(user.ID, models.TransactionSpent, 50, "over-spend written directly")
	require.NoError(t, err)

	balance, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestComputeBalance_IsDeterministic(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "repeat@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, models.TransactionReward, 40, "bonus")
	require.NoError(t, err)
	_, err = ledger.Append(user.ID, models.TransactionRedeemed, 15, "sticker pack")
	require.NoError(t, err)

	first, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	second, err := ledger.ComputeBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 25, first)
}

func TestComputeBalance_UnknownTypeIsHardError(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "corrupt@example.com", models.RoleReporter)

	// Write a row the service itself would refuse, simulating bad data from
	// an older writer.
	bad := models.Transaction{UserID: user.ID, Type: "earned_mystery", Amount: 10}
	require.NoError(t, db.Create(&bad).Error)

	_, err := ledger.ComputeBalance(user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
}

func TestAppend_RejectsNegativeAmount(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "negative@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, models.TransactionEarnedReport, -10, "bogus")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAppend_RejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "unknown@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, "earned_guess", 10, "bogus")
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
}

func TestListByUser_NewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "list@example.com", models.RoleReporter)

	for i := 0; i < 5; i++ {
		_, err := ledger.Append(user.ID, models.TransactionEarnedReport, 10, "report")
		require.NoError(t, err)
	}

	entries, err := ledger.ListByUser(user.ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Same timestamp resolution is possible, so ordering falls back to id.
	assert.Greater(t, entries[0].ID, entries[1].ID)
	assert.Greater(t, entries[1].ID, entries[2].ID)
}

func TestRefreshBalanceCache_WritesAdvisoryField(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "cache@example.com", models.RoleReporter)

	_, err := ledger.Append(user.ID, models.TransactionEarnedCollection, 75, "report collected")
	require.NoError(t, err)
	require.NoError(t, ledger.RefreshBalanceCache(user.ID))

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, 75, refreshed.Balance)
}
