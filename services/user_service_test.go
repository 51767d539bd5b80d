package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencycle-server/models"
)

func TestDeleteUserCascade_RemovesAllOwnedRows(t *testing.T) {
	db := newTestDB(t)
	lifecycle := newTestLifecycle(db)
	reporter := createTestUser(t, db, "doomed@example.com", models.RoleReporter)
	collector := createTestUser(t, db, "collector@example.com", models.RoleCollector)

	report := submitTestReport(t, lifecycle, reporter.ID)
	_, err := lifecycle.AcceptReport(report.ID, collector.ID)
	require.NoError(t, err)
	_, _, _, err = lifecycle.CompleteReport(report.ID, collector.ID, nil, nil)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.PushToken{
		UserID: reporter.ID, Token: "ExponentPushToken[doomed]", Active: true,
	}).Error)

	require.NoError(t, NewUserService(db).DeleteUserCascade(reporter.ID))

	var userCount, reportCount, txCount, notifCount, tokenCount int64
	db.Model(&models.User{}).Where("id = ?", reporter.ID).Count(&userCount)
	db.Model(&models.WasteReport{}).Where("reporter_id = ?", reporter.ID).Count(&reportCount)
	db.Model(&models.Transaction{}).Where("user_id = ?", reporter.ID).Count(&txCount)
	db.Model(&models.Notification{}).Where("user_id = ?", reporter.ID).Count(&notifCount)
	db.Model(&models.PushToken{}).Where("user_id = ?", reporter.ID).Count(&tokenCount)

	assert.Equal(t, int64(0), userCount)
	assert.Equal(t, int64(0), reportCount)
	assert.Equal(t, int64(0), txCount)
	assert.Equal(t, int64(0), notifCount)
	assert.Equal(t, int64(0), tokenCount)
}

func TestDeleteUserCascade_ClearsCollectorOnOthersReports(t *testing.T) {
	db := newTestDB(t)
	lifecycle := newTestLifecycle(db)
	reporter := createTestUser(t, db, "reporter@example.com", models.RoleReporter)
	collector := createTestUser(t, db, "doomed-collector@example.com", models.RoleCollector)

	report := submitTestReport(t, lifecycle, reporter.ID)
	_, err := lifecycle.AcceptReport(report.ID, collector.ID)
	require.NoError(t, err)

	require.NoError(t, NewUserService(db).DeleteUserCascade(collector.ID))

	// The reporter's report survives, only the collector reference is gone.
	var survived models.WasteReport
	require.NoError(t, db.First(&survived, report.ID).Error)
	assert.Nil(t, survived.CollectorID)
	assert.Equal(t, reporter.ID, survived.ReporterID)

	// The reporter's own ledger is untouched.
	balance, err := NewLedgerService(db).ComputeBalance(reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
}

func TestDeleteUserCascade_MissingUser(t *testing.T) {
	db := newTestDB(t)

	err := NewUserService(db).DeleteUserCascade(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
