package models

import (
	"time"
)

// TransactionType is the closed set of ledger entry tags. The sign of an
// entry is implied by its type, never by the stored amount.
type TransactionType string

const (
	TransactionEarnedReport     TransactionType = "earned_report"
	TransactionEarnedCollection TransactionType = "earned_collection"
	TransactionEarnedCollect    TransactionType = "earned_collect"
	TransactionReward           TransactionType = "reward"
	TransactionRedeemed         TransactionType = "redeemed"
	TransactionSpent            TransactionType = "spent"
)

// transactionSigns maps every known type to its accumulation sign.
// Anything missing from this table is rejected loudly rather than
// classified by string prefix.
var transactionSigns = map[TransactionType]int{
	TransactionEarnedReport:     +1,
	TransactionEarnedCollection: +1,
	TransactionEarnedCollect:    +1,
	TransactionReward:           +1,
	TransactionRedeemed:         -1,
	TransactionSpent:            -1,
}

// Sign returns +1 for earning types, -1 for spending types and false for
// anything outside the closed set.
func (t TransactionType) Sign() (int, bool) {
	sign, ok := transactionSigns[t]
	return sign, ok
}

// IsValid reports whether the type belongs to the closed set
func (t TransactionType) IsValid() bool {
	_, ok := transactionSigns[t]
	return ok
}

// Transaction is an immutable ledger entry. Rows are append-only: they are
// never updated and only removed as part of a full user deletion cascade.
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	User        User            `json:"-" gorm:"foreignKey:UserID"`
	Type        TransactionType `json:"type" gorm:"type:varchar(30);not null"`
	Amount      int             `json:"amount" gorm:"not null"` // always >= 0
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
