package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"greencycle-server/models"
)

// UserService handles account-level operations, most importantly the full
// deletion cascade.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// DeleteUserCascade removes a user and every dependent row in one
// transaction: notifications, push tokens, ledger entries and owned reports
// are deleted; reports the user collected for OTHERS keep their history and
// only lose the collector reference. A failure anywhere rolls the whole
// cascade back, so it can be retried as a unit.
func (s *UserService) DeleteUserCascade(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PushToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		// Null collector references before deleting owned reports so no
		// foreign key is left dangling mid-cascade.
		if err := tx.Model(&models.WasteReport{}).
			Where("collector_id = ?", userID).
			Update("collector_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter_id = ?", userID).Delete(&models.WasteReport{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&user).Error; err != nil {
			return err
		}

		log.Printf("✅ User %d and all dependent records deleted", userID)
		return nil
	})
}
