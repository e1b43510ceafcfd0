package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type roleChangeRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleChangeRepository(db *gorm.DB) contract.RoleChangeRepository {
	return &roleChangeRepositoryImpl{db: db}
}

func (r *roleChangeRepositoryImpl) Create(ctx context.Context, request *entity.RoleChangeRequest) error {
	requestData, err := json.Marshal(request.RequestData)
	if err != nil {
		return err
	}
	documents, err := json.Marshal(request.Documents)
	if err != nil {
		return err
	}

	modelRequest := &model.RoleChangeRequest{
		ID:          request.ID,
		UserID:      request.UserID,
		FromRole:    string(request.FromRole),
		ToRole:      string(request.ToRole),
		Status:      string(request.Status),
		RequestData: datatypes.JSON(requestData),
		Documents:   datatypes.JSON(documents),
		AdminNotes:  request.AdminNotes,
	}

	if err := r.db.WithContext(ctx).Create(modelRequest).Error; err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateRequest
		}
		return err
	}

	request.ID = modelRequest.ID
	request.CreatedAt = modelRequest.CreatedAt
	return nil
}

func (r *roleChangeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoleChangeRequest, error) {
	var modelRequest model.RoleChangeRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelRequest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelRequest), nil
}

func (r *roleChangeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error) {
	var modelRequests []*model.RoleChangeRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRequests).Error; err != nil {
		return nil, err
	}

	var requests []*entity.RoleChangeRequest
	for _, mr := range modelRequests {
		requests = append(requests, r.mapToEntity(mr))
	}

	return requests, nil
}

// FindAllWithUser returns requests with the requesting user preloaded for
// the admin queue view.
func (r *roleChangeRepositoryImpl) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error) {
	var modelRequests []*model.RoleChangeRequest
	query := r.db.WithContext(ctx).Preload("User")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRequests).Error; err != nil {
		return nil, err
	}

	var requests []*entity.RoleChangeRequest
	for _, mr := range modelRequests {
		request := r.mapToEntity(mr)
		request.User = entity.User{
			Id:       mr.User.Id,
			Email:    mr.User.Email,
			FullName: mr.User.FullName,
			Role:     entity.UserRole(mr.User.Role),
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *roleChangeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.RoleChangeRequest{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *roleChangeRepositoryImpl) Update(ctx context.Context, request *entity.RoleChangeRequest) error {
	return r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":      string(request.Status),
			"admin_notes": request.AdminNotes,
			"reviewed_by": request.ReviewedBy,
			"reviewed_at": request.ReviewedAt,
			"approved_at": request.ApprovedAt,
		}).Error
}

func (r *roleChangeRepositoryImpl) UpdateRequestData(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Where("id = ?", id).
		Update("request_data", datatypes.JSON(raw)).Error
}

func (r *roleChangeRepositoryImpl) CountByStatusSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Select("status, count(*) as count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *roleChangeRepositoryImpl) AvgReviewHoursSince(ctx context.Context, since time.Time) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Select("AVG(EXTRACT(EPOCH FROM (reviewed_at - created_at)) / 3600.0)").
		Where("created_at >= ? AND reviewed_at IS NOT NULL", since).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *roleChangeRepositoryImpl) DailyCountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	type row struct {
		Day   time.Time
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Select("date_trunc('day', created_at) as day, count(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Day.Format("2006-01-02")] = rw.Count
	}
	return counts, nil
}

func (r *roleChangeRepositoryImpl) HasOpenRequest(ctx context.Context, userId uuid.UUID, toRole entity.UserRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RoleChangeRequest{}).
		Where("user_id = ? AND to_role = ? AND status IN ?",
			userId, string(toRole), []string{"pending", "under_review"}).
		Count(&count).Error
	return count > 0, err
}

// mapToEntity converts model.RoleChangeRequest to entity.RoleChangeRequest
func (r *roleChangeRepositoryImpl) mapToEntity(mr *model.RoleChangeRequest) *entity.RoleChangeRequest {
	var requestData map[string]interface{}
	if len(mr.RequestData) > 0 {
		_ = json.Unmarshal(mr.RequestData, &requestData)
	}
	var documents map[string]string
	if len(mr.Documents) > 0 {
		_ = json.Unmarshal(mr.Documents, &documents)
	}

	return &entity.RoleChangeRequest{
		ID:          mr.ID,
		UserID:      mr.UserID,
		FromRole:    entity.UserRole(mr.FromRole),
		ToRole:      entity.UserRole(mr.ToRole),
		Status:      entity.RoleChangeStatus(mr.Status),
		RequestData: requestData,
		Documents:   documents,
		AdminNotes:  mr.AdminNotes,
		ReviewedBy:  mr.ReviewedBy,
		ReviewedAt:  mr.ReviewedAt,
		ApprovedAt:  mr.ApprovedAt,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
