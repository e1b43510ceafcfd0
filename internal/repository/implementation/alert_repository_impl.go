package implementation

import (
	"context"
	"errors"
	"time"

	"immoflow-be/internal/model"
	"immoflow-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepositoryImpl struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &AlertRepositoryImpl{db: db}
}

func (r *AlertRepositoryImpl) CreateAlert(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// GetAlertsForUser returns both personal alerts and role-wide broadcasts.
func (r *AlertRepositoryImpl) GetAlertsForUser(ctx context.Context, userID uuid.UUID, role string, limit, offset int) ([]model.Alert, int64, error) {
	var alerts []model.Alert
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Alert{}).
		Where("user_id = ? OR target_role = ?", userID, role)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error

	return alerts, total, err
}

func (r *AlertRepositoryImpl) GetActiveCount(ctx context.Context, userID uuid.UUID, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("(user_id = ? OR target_role = ?) AND dismissed = ?", userID, role, false).
		Count(&count).Error
	return count, err
}

func (r *AlertRepositoryImpl) Dismiss(ctx context.Context, alertID uuid.UUID, userID uuid.UUID) error {
	now := time.Now()
	// The user_id guard keeps users from dismissing each other's alerts.
	result := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Updates(map[string]interface{}{
			"dismissed":    true,
			"dismissed_at": now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("alert not found")
	}
	return nil
}

func (r *AlertRepositoryImpl) DismissAll(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("user_id = ? AND dismissed = ?", userID, false).
		Updates(map[string]interface{}{
			"dismissed":    true,
			"dismissed_at": now,
		}).Error
}

func (r *AlertRepositoryImpl) GetAlertTypeByCode(ctx context.Context, code string) (*model.AlertType, error) {
	var alertType model.AlertType
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&alertType).Error
	if err != nil {
		return nil, err
	}
	return &alertType, nil
}

func (r *AlertRepositoryImpl) GetUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Find(&users).Error
	return users, err
}
