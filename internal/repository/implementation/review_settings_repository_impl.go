package implementation

import (
	"context"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"

	"gorm.io/gorm"
)

// reviewSettingsID pins the single configuration row.
const reviewSettingsID = 1

type reviewSettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewSettingsRepository(db *gorm.DB) contract.ReviewSettingsRepository {
	return &reviewSettingsRepositoryImpl{db: db}
}

func (r *reviewSettingsRepositoryImpl) Get(ctx context.Context) (*entity.ReviewSettings, error) {
	var modelSettings model.ReviewSettings
	err := r.db.WithContext(ctx).First(&modelSettings, reviewSettingsID).Error
	if err == gorm.ErrRecordNotFound {
		modelSettings = model.ReviewSettings{
			ID:            reviewSettingsID,
			DeadlineHours: 72,
			AutoAction:    string(entity.AutoActionNone),
		}
		if err := r.db.WithContext(ctx).Create(&modelSettings).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &entity.ReviewSettings{
		ID:            modelSettings.ID,
		DeadlineHours: modelSettings.DeadlineHours,
		AutoAction:    entity.ReviewAutoAction(modelSettings.AutoAction),
		UpdatedBy:     modelSettings.UpdatedBy,
		UpdatedAt:     modelSettings.UpdatedAt,
	}, nil
}

func (r *reviewSettingsRepositoryImpl) Update(ctx context.Context, settings *entity.ReviewSettings) error {
	return r.db.WithContext(ctx).Model(&model.ReviewSettings{}).
		Where("id = ?", reviewSettingsID).
		Updates(map[string]interface{}{
			"deadline_hours": settings.DeadlineHours,
			"auto_action":    string(settings.AutoAction),
			"updated_by":     settings.UpdatedBy,
			"updated_at":     time.Now(),
		}).Error
}
