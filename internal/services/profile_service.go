package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pocketwise/internal/errors"
	"pocketwise/internal/models"
)

// profileService handles profile settings.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile returns the user's profile.
func (s *profileService) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile changes the display name and monthly budget.
func (s *profileService) UpdateProfile(userID, displayName string, monthlyBudget int64) (*models.Profile, error) {
	if monthlyBudget <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget must be greater than zero")
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"display_name":   displayName,
		"monthly_budget": monthlyBudget,
	}
	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	profile.DisplayName = displayName
	profile.MonthlyBudget = monthlyBudget
	return profile, nil
}
