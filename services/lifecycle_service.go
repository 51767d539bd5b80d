package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"greencycle-server/config"
	"greencycle-server/models"
)

// LifecycleService orchestrates a waste report through its states
// (pending → in_progress → completed → verified) and guarantees the
// collection reward is issued at most once per report.
type LifecycleService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
	rewards  config.RewardConfig
}

func NewLifecycleService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService, rewards config.RewardConfig) *LifecycleService {
	return &LifecycleService{
		db:       db,
		ledger:   ledger,
		notifier: notifier,
		rewards:  rewards,
	}
}

// SubmitReport creates a new pending report and rewards the reporter the flat
// submission points. Report row and ledger entry commit together.
func (s *LifecycleService) SubmitReport(reporterID uint, req models.WasteReportCreate) (*models.WasteReport, *models.Transaction, error) {
	report := models.WasteReport{
		ReporterID: reporterID,
		Location:   req.Location,
		WasteType:  req.WasteType,
		Amount:     req.Amount,
		ImageURL:   req.ImageURL,
		Status:     models.ReportStatusPending,
	}

	var entry *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		var err error
		entry, err = s.ledger.AppendTx(tx, reporterID, models.TransactionEarnedReport, s.rewards.ReportPoints,
			fmt.Sprintf("Points for reporting waste report #%d", report.ID))
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.ledger.RefreshBalanceCache(reporterID); err != nil {
		log.Printf("⚠️ Failed to refresh balance cache for user %d: %v", reporterID, err)
	}

	return &report, entry, nil
}

// AcceptReport moves a pending report to in_progress and assigns the actor
// as its collector. The status check and the flip are one conditional UPDATE
// so two concurrent accepts cannot both win.
func (s *LifecycleService) AcceptReport(reportID, actorID uint) (*models.WasteReport, error) {
	res := s.db.Model(&models.WasteReport{}).
		Where("id = ? AND status = ? AND collector_id IS NULL", reportID, models.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":       models.ReportStatusInProgress,
			"collector_id": actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var existing models.WasteReport
		if err := s.db.First(&existing, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReportNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	var report models.WasteReport
	if err := s.db.First(&report, reportID).Error; err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(report.ReporterID,
		"Collection Started",
		"A collector has accepted your waste report and is on the way!",
		"report_accepted",
		map[string]interface{}{"report_id": report.ID, "status": string(report.Status)},
		nil); err != nil {
		log.Printf("⚠️ Failed to send acceptance notification for report %d: %v", report.ID, err)
	}

	log.Printf("✅ Report %d accepted by collector %d", report.ID, actorID)
	return &report, nil
}

// CompleteReport settles a report: flips it to completed, stores the
// optional verification result, rewards the REPORT OWNER the flat collection
// points and queues a notification — all in one database transaction.
//
// The double-reward guard is the conditional UPDATE: only one caller can move
// the report out of an open status, every other concurrent completion sees
// zero affected rows and gets ErrAlreadyCompleted. The admin shortcut from
// pending behaves as accept+complete in a single step, so the collector
// invariant holds (COALESCE keeps an already-assigned collector).
func (s *LifecycleService) CompleteReport(reportID, actorID uint, verification *models.VerificationResult, imageURL *string) (*models.WasteReport, *models.Transaction, int, error) {
	var report models.WasteReport
	var entry *models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.ReportStatusCompleted,
			"collector_id": gorm.Expr("COALESCE(collector_id, ?)", actorID),
			"collected_at": now,
		}
		if verification != nil {
			updates["waste_type_match"] = verification.WasteTypeMatch
			updates["quantity_match"] = verification.QuantityMatch
			updates["confidence"] = verification.Confidence
		}
		if imageURL != nil {
			updates["image_url"] = *imageURL
		}

		res := tx.Model(&models.WasteReport{}).
			Where("id = ? AND status IN ?", reportID, []models.WasteReportStatus{models.ReportStatusPending, models.ReportStatusInProgress}).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var existing models.WasteReport
			if err := tx.First(&existing, reportID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrReportNotFound
				}
				return err
			}
			if existing.IsSettled() {
				return ErrAlreadyCompleted
			}
			return ErrInvalidTransition
		}

		if err := tx.First(&report, reportID).Error; err != nil {
			return err
		}

		var err error
		entry, err = s.ledger.AppendTx(tx, report.ReporterID, models.TransactionEarnedCollection, s.rewards.CollectionPoints,
			fmt.Sprintf("Points for collected waste report #%d", report.ID))
		if err != nil {
			return err
		}

		_, err = s.notifier.CreateInTx(tx, report.ReporterID,
			"Waste Collected",
			fmt.Sprintf("Your waste report has been collected. You earned %d points!", s.rewards.CollectionPoints),
			"report_completed",
			map[string]interface{}{
				"report_id": report.ID,
				"reward":    s.rewards.CollectionPoints,
				"image_url": report.ImageURL,
			},
			report.ImageURL)
		return err
	})
	if err != nil {
		return nil, nil, 0, err
	}

	// Post-commit side effects; neither may undo the committed reward.
	if err := s.ledger.RefreshBalanceCache(report.ReporterID); err != nil {
		log.Printf("⚠️ Failed to refresh balance cache for user %d: %v", report.ReporterID, err)
	}
	s.notifier.Deliver(report.ReporterID,
		"Waste Collected",
		fmt.Sprintf("Your waste report has been collected. You earned %d points!", s.rewards.CollectionPoints),
		map[string]interface{}{"report_id": report.ID, "reward": s.rewards.CollectionPoints})

	log.Printf("✅ Report %d completed by collector %d, %d points rewarded to user %d",
		report.ID, actorID, s.rewards.CollectionPoints, report.ReporterID)

	return &report, entry, s.rewards.CollectionPoints, nil
}
