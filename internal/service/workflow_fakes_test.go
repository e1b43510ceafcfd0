package service

import (
	"context"
	"fmt"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory unit of work for exercising the workflow services without a
// database. Specifications are interpreted by type: only the ones the
// services under test actually pass are supported.

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	users    *fakeUserRepo
	requests *fakeRoleChangeRepo
	certs    *fakeCertificationRepo
	settings *fakeSettingsRepo
	leases   *fakeLeaseRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:    &fakeUserRepo{},
		requests: &fakeRoleChangeRepo{},
		certs:    &fakeCertificationRepo{},
		settings: &fakeSettingsRepo{settings: &entity.ReviewSettings{DeadlineHours: 72, AutoAction: entity.AutoActionNone}},
		leases:   &fakeLeaseRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                     { return u.users }
func (u *fakeUow) RoleChangeRepository() contract.RoleChangeRepository         { return u.requests }
func (u *fakeUow) CertificationRepository() contract.CertificationRepository   { return u.certs }
func (u *fakeUow) MandateRepository() contract.MandateRepository               { return nil }
func (u *fakeUow) LeaseRepository() contract.LeaseRepository                   { return u.leases }
func (u *fakeUow) ReviewSettingsRepository() contract.ReviewSettingsRepository { return u.settings }

// --- role change requests ---

type fakeRoleChangeRepo struct {
	requests  []*entity.RoleChangeRequest
	hasOpen   bool
	createErr error
}

func (r *fakeRoleChangeRepo) Create(ctx context.Context, request *entity.RoleChangeRequest) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.requests = append(r.requests, request)
	return nil
}

func (r *fakeRoleChangeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoleChangeRequest, error) {
	for _, req := range r.requests {
		if requestMatches(req, specs) {
			return req, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleChangeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error) {
	var out []*entity.RoleChangeRequest
	for _, req := range r.requests {
		if requestMatches(req, specs) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRoleChangeRepo) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeRoleChangeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, _ := r.FindAll(ctx, specs...)
	return int64(len(found)), nil
}

func (r *fakeRoleChangeRepo) Update(ctx context.Context, request *entity.RoleChangeRequest) error {
	for i, req := range r.requests {
		if req.ID == request.ID {
			r.requests[i] = request
			return nil
		}
	}
	return entity.ErrRequestNotFound
}

func (r *fakeRoleChangeRepo) UpdateRequestData(ctx context.Context, id uuid.UUID, data map[string]interface{}) error {
	for _, req := range r.requests {
		if req.ID == id {
			req.RequestData = data
			return nil
		}
	}
	return entity.ErrRequestNotFound
}

func (r *fakeRoleChangeRepo) CountByStatusSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *fakeRoleChangeRepo) AvgReviewHoursSince(ctx context.Context, since time.Time) (float64, error) {
	return 0, nil
}

func (r *fakeRoleChangeRepo) DailyCountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *fakeRoleChangeRepo) HasOpenRequest(ctx context.Context, userId uuid.UUID, toRole entity.UserRole) (bool, error) {
	return r.hasOpen, nil
}

func requestMatches(r *entity.RoleChangeRequest, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if r.ID != s.ID {
				return false
			}
		case specification.ByUserID:
			if r.UserID != s.UserID {
				return false
			}
		case specification.OpenRequests:
			if r.Status != entity.RoleChangeStatusPending && r.Status != entity.RoleChangeStatusUnderReview {
				return false
			}
		case specification.CreatedBefore:
			if !r.CreatedAt.Before(s.Cutoff) {
				return false
			}
		}
	}
	return true
}

// --- certifications ---

type fakeCertificationRepo struct {
	certs []*entity.Certification
}

func (r *fakeCertificationRepo) Create(ctx context.Context, cert *entity.Certification) error {
	r.certs = append(r.certs, cert)
	return nil
}

func (r *fakeCertificationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Certification, error) {
	for _, cert := range r.certs {
		if certMatches(cert, specs) {
			return cert, nil
		}
	}
	return nil, nil
}

func (r *fakeCertificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error) {
	var out []*entity.Certification
	for _, cert := range r.certs {
		if certMatches(cert, specs) {
			out = append(out, cert)
		}
	}
	return out, nil
}

func (r *fakeCertificationRepo) FindAllWithLease(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeCertificationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, _ := r.FindAll(ctx, specs...)
	return int64(len(found)), nil
}

func (r *fakeCertificationRepo) Update(ctx context.Context, cert *entity.Certification) error {
	for i, c := range r.certs {
		if c.ID == cert.ID {
			r.certs[i] = cert
			return nil
		}
	}
	return entity.ErrRequestNotFound
}

func (r *fakeCertificationRepo) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata map[string]interface{}) error {
	for _, c := range r.certs {
		if c.ID == id {
			c.Metadata = metadata
			return nil
		}
	}
	return entity.ErrRequestNotFound
}

func certMatches(c *entity.Certification, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.ID != s.ID {
				return false
			}
		case specification.OpenRequests:
			if c.Status != entity.CertificationStatusPending && c.Status != entity.CertificationStatusUnderReview {
				return false
			}
		case specification.RequestedBefore:
			if !c.RequestedAt.Before(s.Cutoff) {
				return false
			}
		}
	}
	return true
}

// --- users ---

type fakeUserRepo struct {
	users []*entity.User
	roles map[uuid.UUID]entity.UserRole
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.users {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByID); ok && user.Id != s.ID {
				match = false
			}
		}
		if match {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	if r.roles == nil {
		r.roles = make(map[uuid.UUID]entity.UserRole)
	}
	r.roles[id] = role
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

// --- leases / settings ---

type fakeLeaseRepo struct{}

func (r *fakeLeaseRepo) Create(ctx context.Context, lease *entity.Lease) error { return nil }
func (r *fakeLeaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lease, error) {
	return nil, nil
}
func (r *fakeLeaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lease, error) {
	return nil, nil
}
func (r *fakeLeaseRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeSettingsRepo struct {
	settings *entity.ReviewSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.ReviewSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.ReviewSettings) error {
	r.settings = settings
	return nil
}

// --- collaborators ---

// fakeStore records saves and deletes and can be told to fail the Nth
// Save call, for exercising the submission compensation path.
type fakeStore struct {
	saved     []string
	deleted   []string
	failAfter int // fail once this many saves succeeded; 0 never fails
}

func (s *fakeStore) Save(ctx context.Context, key string, content []byte) (string, error) {
	if s.failAfter > 0 && len(s.saved) >= s.failAfter {
		return "", fmt.Errorf("disk full")
	}
	url := "http://localhost:3000/uploads/documents/" + key
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeStore) Delete(ctx context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) record(name string) { p.events = append(p.events, name) }

func (p *fakePublisher) PublishRoleRequestReviewed(ctx context.Context, requestId, userId uuid.UUID, toRole, decision, notes string, auto bool) {
	p.record("role_request_reviewed")
}
func (p *fakePublisher) PublishRoleRequestSubmitted(ctx context.Context, requestId, userId uuid.UUID, fromRole, toRole string) {
	p.record("role_request_submitted")
}
func (p *fakePublisher) PublishRoleRequestCancelled(ctx context.Context, requestId, userId uuid.UUID, toRole string) {
	p.record("role_request_cancelled")
}
func (p *fakePublisher) PublishCertificationSubmitted(ctx context.Context, certId, leaseId uuid.UUID, propertyLabel string) {
	p.record("certification_submitted")
}
func (p *fakePublisher) PublishCertificationReviewed(ctx context.Context, certId, leaseId uuid.UUID, decision, certNumber string, parties []uuid.UUID) {
	p.record("certification_reviewed")
}
func (p *fakePublisher) PublishCertificationRevoked(ctx context.Context, certId, leaseId uuid.UUID, reason string, parties []uuid.UUID) {
	p.record("certification_revoked")
}
func (p *fakePublisher) PublishMandateChanged(ctx context.Context, mandateId, ownerId, agencyId uuid.UUID, eventType string) {
	p.record("mandate_changed")
}

type fakePrerequisites struct {
	result      *dto.PrerequisiteCheckResponse
	invalidated []uuid.UUID
}

func (p *fakePrerequisites) Check(ctx context.Context, userId uuid.UUID, targetRole entity.UserRole) (*dto.PrerequisiteCheckResponse, error) {
	if p.result != nil {
		return p.result, nil
	}
	return &dto.PrerequisiteCheckResponse{CanUpgrade: true}, nil
}

func (p *fakePrerequisites) Invalidate(userId uuid.UUID) {
	p.invalidated = append(p.invalidated, userId)
}

type fakePipeline struct {
	published [][]byte
}

func (p *fakePipeline) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}
