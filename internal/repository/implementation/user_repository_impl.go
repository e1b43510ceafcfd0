package implementation

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := &model.User{
		Id:               user.Id,
		Email:            user.Email,
		FullName:         user.FullName,
		Phone:            user.Phone,
		City:             user.City,
		Role:             string(user.Role),
		Status:           string(user.Status),
		EmailVerified:    user.EmailVerified,
		PhoneVerified:    user.PhoneVerified,
		IdentityVerified: user.IdentityVerified,
		AvatarURL:        user.AvatarURL,
	}
	return r.db.WithContext(ctx).Create(modelUser).Error
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"full_name":         user.FullName,
			"phone":             user.Phone,
			"city":              user.City,
			"role":              string(user.Role),
			"status":            string(user.Status),
			"email_verified":    user.EmailVerified,
			"phone_verified":    user.PhoneVerified,
			"identity_verified": user.IdentityVerified,
		}).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelUser), nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, mu := range modelUsers {
		users = append(users, r.mapToEntity(mu))
	}

	return users, nil
}

func (r *userRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", string(role)).Error
}

func (r *userRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *userRepositoryImpl) CountByRole(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Role] = rw.Count
	}
	return counts, nil
}

// mapToEntity converts model.User to entity.User
func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		Id:               mu.Id,
		Email:            mu.Email,
		FullName:         mu.FullName,
		Phone:            mu.Phone,
		City:             mu.City,
		Role:             entity.UserRole(mu.Role),
		Status:           entity.UserStatus(mu.Status),
		EmailVerified:    mu.EmailVerified,
		PhoneVerified:    mu.PhoneVerified,
		IdentityVerified: mu.IdentityVerified,
		AvatarURL:        mu.AvatarURL,
		CreatedAt:        mu.CreatedAt,
		UpdatedAt:        mu.UpdatedAt,
	}
}
