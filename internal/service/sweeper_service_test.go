package service

import (
	"context"
	"testing"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/pkg/admin/certification"
	"immoflow-be/pkg/admin/rolechange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newSweeperFixture() (*sweeperService, *fakeUow, *fakePublisher) {
	uow := newFakeUow()
	publisher := &fakePublisher{}
	svc := &sweeperService{
		uowFactory: &fakeUowFactory{uow: uow},
		processor:  rolechange.NewProcessor(noopLogger{}, publisher),
		reviewer:   certification.NewReviewer(noopLogger{}, publisher),
		publisher:  publisher,
		interval:   time.Minute,
		logger:     noopLogger{},
	}
	return svc, uow, publisher
}

func TestSweepOnceClosesOnlyOverdueRequests(t *testing.T) {
	svc, uow, _ := newSweeperFixture()
	uow.settings.settings = &entity.ReviewSettings{DeadlineHours: 72, AutoAction: entity.AutoActionApprove}

	now := time.Now()
	userId := uuid.New()
	uow.users.users = []*entity.User{{Id: userId, Role: entity.UserRoleTenant}}

	overdue := &entity.RoleChangeRequest{
		ID:        uuid.New(),
		UserID:    userId,
		ToRole:    entity.UserRoleOwner,
		Status:    entity.RoleChangeStatusPending,
		CreatedAt: now.Add(-73 * time.Hour),
	}
	fresh := &entity.RoleChangeRequest{
		ID:        uuid.New(),
		UserID:    userId,
		ToRole:    entity.UserRoleAgency,
		Status:    entity.RoleChangeStatusPending,
		CreatedAt: now.Add(-71 * time.Hour),
	}
	uow.requests.requests = []*entity.RoleChangeRequest{overdue, fresh}

	closed, err := svc.SweepOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, closed)

	assert.Equal(t, entity.RoleChangeStatusApproved, overdue.Status)
	assert.Equal(t, entity.UserRoleOwner, uow.users.roles[userId], "approval flips the user's role")
	assert.Equal(t, entity.RoleChangeStatusPending, fresh.Status, "a request inside the deadline stays pending")
}

func TestSweepOnceClosesOverdueCertifications(t *testing.T) {
	svc, uow, _ := newSweeperFixture()
	uow.settings.settings = &entity.ReviewSettings{DeadlineHours: 72, AutoAction: entity.AutoActionApprove}

	now := time.Now()
	overdue := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     uuid.New(),
		Status:      entity.CertificationStatusPending,
		RequestedAt: now.Add(-73 * time.Hour),
	}
	fresh := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     uuid.New(),
		Status:      entity.CertificationStatusPending,
		RequestedAt: now.Add(-time.Hour),
	}
	uow.certs.certs = []*entity.Certification{overdue, fresh}

	closed, err := svc.SweepOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, closed)

	assert.Equal(t, entity.CertificationStatusApproved, overdue.Status)
	assert.NotEmpty(t, overdue.CertificationNumber, "auto-approval stamps a number")
	assert.Nil(t, overdue.ReviewerID, "no reviewer is recorded for an automatic decision")
	assert.Equal(t, entity.CertificationStatusPending, fresh.Status)
}

func TestSweepOnceRejectsWhenConfigured(t *testing.T) {
	svc, uow, _ := newSweeperFixture()
	uow.settings.settings = &entity.ReviewSettings{DeadlineHours: 72, AutoAction: entity.AutoActionReject}

	now := time.Now()
	userId := uuid.New()
	uow.users.users = []*entity.User{{Id: userId, Role: entity.UserRoleTenant}}

	request := &entity.RoleChangeRequest{
		ID:        uuid.New(),
		UserID:    userId,
		ToRole:    entity.UserRoleOwner,
		Status:    entity.RoleChangeStatusUnderReview,
		CreatedAt: now.Add(-100 * time.Hour),
	}
	cert := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     uuid.New(),
		Status:      entity.CertificationStatusUnderReview,
		RequestedAt: now.Add(-100 * time.Hour),
	}
	uow.requests.requests = []*entity.RoleChangeRequest{request}
	uow.certs.certs = []*entity.Certification{cert}

	closed, err := svc.SweepOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, closed)

	assert.Equal(t, entity.RoleChangeStatusRejected, request.Status)
	assert.Empty(t, uow.users.roles, "a rejection never touches the user's role")
	assert.Equal(t, entity.CertificationStatusRejected, cert.Status)
	assert.Empty(t, cert.CertificationNumber)
}

func TestSweepOnceIdleWhenAutoActionNone(t *testing.T) {
	svc, uow, _ := newSweeperFixture()
	uow.settings.settings = &entity.ReviewSettings{DeadlineHours: 72, AutoAction: entity.AutoActionNone}

	request := &entity.RoleChangeRequest{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Status:    entity.RoleChangeStatusPending,
		CreatedAt: time.Now().Add(-1000 * time.Hour),
	}
	uow.requests.requests = []*entity.RoleChangeRequest{request}

	closed, err := svc.SweepOnce(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, closed)
	assert.Equal(t, entity.RoleChangeStatusPending, request.Status)
}
