package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"greencycle-server/models"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// NotificationService creates notification rows and delivers them to the
// user's devices. Delivery is fire-and-forget: a push failure is logged and
// swallowed, it never undoes the event that triggered it.
type NotificationService struct {
	db     *gorm.DB
	client *http.Client
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db: db,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateInTx writes the notification row inside a caller-supplied
// transaction. The lifecycle controller uses this so the completion
// notification commits together with the reward.
func (s *NotificationService) CreateInTx(tx *gorm.DB, userID uint, title, body, notificationType string, data map[string]interface{}, imageURL *string) (*models.Notification, error) {
	dataJSON, _ := json.Marshal(data)
	notification := models.Notification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Type:     notificationType,
		Data:     string(dataJSON),
		ImageURL: imageURL,
		Read:     false,
	}

	if err := tx.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// Notify creates the notification row and pushes it to the user's devices.
func (s *NotificationService) Notify(userID uint, title, body, notificationType string, data map[string]interface{}, imageURL *string) error {
	notification, err := s.CreateInTx(s.db, userID, title, body, notificationType, data, imageURL)
	if err != nil {
		log.Printf("❌ Error creating notification record for user %d: %v", userID, err)
		return err
	}

	log.Printf("✅ Notification record %d created for user %d", notification.ID, userID)
	s.Deliver(userID, title, body, data)
	return nil
}

// Deliver pushes an already-persisted notification to the user's active
// tokens. All errors are logged, none propagate.
func (s *NotificationService) Deliver(userID uint, title, body string, data map[string]interface{}) {
	var tokens []models.PushToken
	if err := s.db.Where("user_id = ? AND active = ?", userID, true).Find(&tokens).Error; err != nil {
		log.Printf("❌ Error fetching push tokens for user %d: %v", userID, err)
		return
	}

	if len(tokens) == 0 {
		log.Printf("⚠️ No push tokens found for user %d", userID)
		return
	}

	successCount := 0
	for _, token := range tokens {
		if err := s.sendExpoPush(token.Token, title, body, data); err != nil {
			log.Printf("❌ Error sending push notification to token %s: %v", token.Token, err)
		} else {
			successCount++
		}
	}

	log.Printf("📊 Push summary: %d/%d sent to user %d", successCount, len(tokens), userID)
}

// sendExpoPush sends one notification via the Expo Push API
func (s *NotificationService) sendExpoPush(token, title, body string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"to":        token,
		"title":     title,
		"body":      body,
		"data":      data,
		"sound":     "default",
		"priority":  "high",
		"channelId": "report_updates",
	}

	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", expoPushURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("expo push failed: %s - %s", resp.Status, string(respBody))
	}

	return nil
}
