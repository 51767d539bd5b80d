package models

import (
	"time"
)

// WasteReportStatus represents the current status of a waste report
type WasteReportStatus string

const (
	ReportStatusPending    WasteReportStatus = "pending"
	ReportStatusInProgress WasteReportStatus = "in_progress"
	ReportStatusCompleted  WasteReportStatus = "completed"
	ReportStatusVerified   WasteReportStatus = "verified"
)

// WasteReport represents a waste report submitted by a user. It doubles as the
// collection task a collector accepts and completes.
//
// Invariant: CollectorID is NULL while Status is pending; once the report is
// in_progress, completed or verified a collector must be set.
type WasteReport struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ReporterID uint   `json:"reporter_id" gorm:"not null;index"`
	Reporter   User   `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Location   string `json:"location" gorm:"type:text;not null"`
	WasteType  string `json:"waste_type" gorm:"type:varchar(100);not null"`
	Amount     string `json:"amount" gorm:"type:varchar(100);not null"`
	ImageURL   *string `json:"image_url" gorm:"size:512"`

	// Verification result supplied by the external image verifier, if any.
	WasteTypeMatch *bool    `json:"waste_type_match"`
	QuantityMatch  *bool    `json:"quantity_match"`
	Confidence     *float64 `json:"confidence" gorm:"type:decimal(4,3)"`

	Status      WasteReportStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CollectorID *uint             `json:"collector_id" gorm:"index"`
	Collector   *User             `json:"collector,omitempty" gorm:"foreignKey:CollectorID"`
	CollectedAt *time.Time        `json:"collected_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (WasteReport) TableName() string {
	return "waste_reports"
}

// IsOpen reports whether the report can still be completed
func (r *WasteReport) IsOpen() bool {
	return r.Status == ReportStatusPending || r.Status == ReportStatusInProgress
}

// IsSettled reports whether the report has already been completed or verified
func (r *WasteReport) IsSettled() bool {
	return r.Status == ReportStatusCompleted || r.Status == ReportStatusVerified
}

// WasteReportCreate represents the request structure for submitting a report
type WasteReportCreate struct {
	Location  string  `json:"location" binding:"required"`
	WasteType string  `json:"waste_type" binding:"required"`
	Amount    string  `json:"amount" binding:"required"`
	ImageURL  *string `json:"image_url"`
}

// VerificationResult is the optional image-match payload attached on completion
type VerificationResult struct {
	WasteTypeMatch bool    `json:"waste_type_match"`
	QuantityMatch  bool    `json:"quantity_match"`
	Confidence     float64 `json:"confidence" binding:"min=0,max=1"`
}
