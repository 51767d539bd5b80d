package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"greencycle-server/models"
)

// LedgerService owns the append-only transactions table and derives balances
// from it. It performs no deduplication: guarding against double-appends for
// the same logical event is the caller's job (see LifecycleService).
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Append writes one immutable ledger entry for a user.
func (s *LedgerService) Append(userID uint, txType models.TransactionType, amount int, description string) (*models.Transaction, error) {
	return s.AppendTx(s.db, userID, txType, amount, description)
}

// AppendTx is Append inside a caller-supplied transaction, used by the
// completion critical section so the status flip and the reward commit or
// roll back together.
func (s *LedgerService) AppendTx(tx *gorm.DB, userID uint, txType models.TransactionType, amount int, description string) (*models.Transaction, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, txType)
	}

	entry := models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListByUser returns a user's ledger entries newest-first, bounded by limit.
func (s *LedgerService) ListByUser(userID uint, limit int) ([]models.Transaction, error) {
	var entries []models.Transaction
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ComputeBalance folds a user's full ledger history into their spendable
// balance: +amount for earning types, -amount for spending types. The result
// is clamped at zero. A stored type outside the closed set is a hard error,
// never silently skipped.
//
// This is a pure read; recomputing on the same rows always yields the same
// value.
func (s *LedgerService) ComputeBalance(userID uint) (int, error) {
	return s.ComputeBalanceTx(s.db, userID)
}

// ComputeBalanceTx is ComputeBalance against a caller-supplied transaction,
// used when a redemption must check and spend under one snapshot.
func (s *LedgerService) ComputeBalanceTx(tx *gorm.DB, userID uint) (int, error) {
	var entries []models.Transaction
	if err := tx.Select("type", "amount").Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return 0, err
	}

	balance := 0
	for _, entry := range entries {
		sign, ok := entry.Type.Sign()
		if !ok {
			return 0, fmt.Errorf("%w: %q in transaction history of user %d", ErrUnknownTransactionType, entry.Type, userID)
		}
		balance += sign * entry.Amount
	}

	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

// RefreshBalanceCache recomputes the advisory users.balance field. The cache
// is write-only from the business rules' perspective; nothing reads it for
// correctness-critical decisions.
func (s *LedgerService) RefreshBalanceCache(userID uint) error {
	balance, err := s.ComputeBalance(userID)
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("balance", balance).Error; err != nil {
		return err
	}
	log.Printf("💰 Balance cache refreshed for user %d: %d points", userID, balance)
	return nil
}
