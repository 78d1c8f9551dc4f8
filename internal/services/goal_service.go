package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pocketwise/internal/errors"
	"pocketwise/internal/models"
)

// defaultGoalIcon decorates goals created without an explicit icon.
const defaultGoalIcon = "🎯"

// goalService handles savings-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal with zero progress.
func (s *goalService) CreateGoal(userID, name, icon string, targetAmount int64, deadline *string) (*models.SavingsGoal, error) {
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if icon == "" {
		icon = defaultGoalIcon
	}

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         name,
		Icon:         icon,
		TargetAmount: targetAmount,
		Deadline:     deadline,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns all of the user's goals, newest first.
func (s *goalService) GetUserGoals(userID string) ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID returns a single goal owned by the user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal changes the goal's descriptive fields and target. Progress and
// the completion flag are untouched; only deposits recompute completion.
func (s *goalService) UpdateGoal(userID, goalID, name, icon string, targetAmount int64, deadline *string) (*models.SavingsGoal, error) {
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if icon == "" {
		icon = defaultGoalIcon
	}

	updates := map[string]interface{}{
		"name":          name,
		"icon":          icon,
		"target_amount": targetAmount,
		"deadline":      deadline,
	}
	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.Name = name
	goal.Icon = icon
	goal.TargetAmount = targetAmount
	goal.Deadline = deadline

	return goal, nil
}

// DeleteGoal removes an owned goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.SavingsGoal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Deposit adds to the goal's progress and recomputes the completion flag in
// the same write. Non-positive amounts are a no-op, not an error.
func (s *goalService) Deposit(userID, goalID string, amount int64) (*models.SavingsGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return goal, nil
	}

	newAmount := goal.CurrentAmount + amount
	updates := map[string]interface{}{
		"current_amount": newAmount,
		"is_completed":   newAmount >= goal.TargetAmount,
	}
	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.CurrentAmount = newAmount
	goal.IsCompleted = newAmount >= goal.TargetAmount

	return goal, nil
}
