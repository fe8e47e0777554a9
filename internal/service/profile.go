package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/safebite/backend/internal/models"
)

// ProfileService handles dietary profile reads and upserts. The menu filter
// treats an absent profile as an empty restriction set, so Get returns nil
// rather than an error for users who never filled the medical form.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetDietaryProfile returns the user's profile, or nil when none exists.
func (s *ProfileService) GetDietaryProfile(ctx context.Context, userID uuid.UUID) (*models.DietaryProfile, error) {
	var profile models.DietaryProfile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertDietaryProfile creates or replaces the user's profile. Only the
// owning user may write it; handlers bind UserID from the token.
func (s *ProfileService) UpsertDietaryProfile(ctx context.Context, profile *models.DietaryProfile) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}
