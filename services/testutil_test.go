package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"greencycle-server/config"
	"greencycle-server/models"
)

var testRewards = config.RewardConfig{
	ReportPoints:     10,
	CollectionPoints: 75,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WasteReport{},
		&models.Transaction{},
		&models.Notification{},
		&models.PushToken{},
		&models.RewardItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestLifecycle(db *gorm.DB) *LifecycleService {
	ledger := NewLedgerService(db)
	notifier := NewNotificationService(db)
	return NewLifecycleService(db, ledger, notifier, testRewards)
}
