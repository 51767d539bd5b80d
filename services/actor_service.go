package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"greencycle-server/models"
	"greencycle-server/utils"
)

// ActorService maps an administrator's session identity (email + display
// name from the JWT) to a persisted user id usable as a report's collector,
// creating a minimal collector record on first encounter.
type ActorService struct {
	db *gorm.DB
}

func NewActorService(db *gorm.DB) *ActorService {
	return &ActorService{db: db}
}

// ResolveActor finds or creates the user behind an admin session email.
// When two concurrent resolutions race on the insert, the loser falls back
// to re-querying by email instead of failing.
func (s *ActorService) ResolveActor(email, fullName string) (uint, error) {
	if email == "" {
		return 0, fmt.Errorf("%w: empty email", ErrActorResolutionFailed)
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrActorResolutionFailed, err)
	}

	if fullName == "" {
		fullName = "Waste Collector"
	}

	// Placeholder credential: the actor record exists only to carry a stable
	// collector id, it cannot be logged into until a real password is set.
	placeholder, err := utils.HashPassword(fmt.Sprintf("collector:%s", email))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrActorResolutionFailed, err)
	}

	user = models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: placeholder,
		Role:         models.RoleCollector,
		Balance:      0,
		IsActive:     true,
	}

	if createErr := s.db.Create(&user).Error; createErr != nil {
		// Likely a unique-email race with a concurrent resolution; the row
		// should exist now.
		log.Printf("⚠️ Actor create for %s failed (%v), re-querying", email, createErr)
		var existing models.User
		if err := s.db.Where("email = ?", email).First(&existing).Error; err != nil {
			return 0, fmt.Errorf("%w: %v", ErrActorResolutionFailed, createErr)
		}
		return existing.ID, nil
	}

	log.Printf("✅ Created collector record %d for %s", user.ID, email)
	return user.ID, nil
}
