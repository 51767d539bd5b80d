package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeSign(t *testing.T) {
	earning := []TransactionType{
		TransactionEarnedReport,
		TransactionEarnedCollection,
		TransactionEarnedCollect,
		TransactionReward,
	}
	for _, txType := range earning {
		sign, ok := txType.Sign()
		assert.True(t, ok, "type %q should be known", txType)
		assert.Equal(t, +1, sign, "type %q should earn", txType)
	}

	spending := []TransactionType{TransactionRedeemed, TransactionSpent}
	for _, txType := range spending {
		sign, ok := txType.Sign()
		assert.True(t, ok, "type %q should be known", txType)
		assert.Equal(t, -1, sign, "type %q should spend", txType)
	}
}

func TestTransactionTypeClosedSet(t *testing.T) {
	// Membership is exact, never by prefix.
	for _, txType := range []TransactionType{"earned_bonus", "earned", "redeemed_extra", ""} {
		_, ok := txType.Sign()
		assert.False(t, ok, "type %q must be rejected", txType)
		assert.False(t, txType.IsValid())
	}

	assert.True(t, TransactionEarnedReport.IsValid())
}
