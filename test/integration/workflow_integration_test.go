package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	"immoflow-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func connectDB(t *testing.T) *gorm.DB {
	t.Helper()

	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	return gormDB
}

func TestGormConnection(t *testing.T) {
	gormDB := connectDB(t)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.RoleChangeRepository())
	assert.NotNil(t, uow.CertificationRepository())
	assert.NotNil(t, uow.MandateRepository())
	assert.NotNil(t, uow.LeaseRepository())
	assert.NotNil(t, uow.ReviewSettingsRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Review Settings Singleton", func(t *testing.T) {
		settings, err := uow.ReviewSettingsRepository().Get(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, settings)
		t.Logf("Review deadline: %dh, auto action: %s", settings.DeadlineHours, settings.AutoAction)
	})
}

func TestRoleChangeRequestRoundTrip(t *testing.T) {
	gormDB := connectDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	// Everything runs in one transaction rolled back at the end so the
	// test leaves no rows behind.
	assert.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	user := &entity.User{
		Id:               uuid.New(),
		Email:            "test-workflow-" + uuid.New().String() + "@example.com",
		FullName:         "Workflow Test User",
		Phone:            "+2250102030405",
		City:             "Abidjan",
		Role:             entity.UserRoleTenant,
		Status:           entity.UserStatusActive,
		EmailVerified:    true,
		PhoneVerified:    true,
		IdentityVerified: true,
	}
	assert.NoError(t, uow.UserRepository().Create(ctx, user))

	request := &entity.RoleChangeRequest{
		ID:       uuid.New(),
		UserID:   user.Id,
		FromRole: entity.UserRoleTenant,
		ToRole:   entity.UserRoleOwner,
		Status:   entity.RoleChangeStatusPending,
		RequestData: map[string]interface{}{
			"motivation": "owns two apartments in Cocody",
		},
	}
	assert.NoError(t, uow.RoleChangeRepository().Create(ctx, request))

	t.Run("Open request is visible", func(t *testing.T) {
		open, err := uow.RoleChangeRepository().HasOpenRequest(ctx, user.Id, entity.UserRoleOwner)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("Fetch by id", func(t *testing.T) {
		found, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: request.ID})
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, entity.RoleChangeStatusPending, found.Status)
		assert.Equal(t, user.Id, found.UserID)
	})

	// Runs last: the unique violation aborts the surrounding transaction,
	// so nothing can query through this unit of work afterwards.
	t.Run("Duplicate open request is rejected by the index", func(t *testing.T) {
		dup := &entity.RoleChangeRequest{
			ID:       uuid.New(),
			UserID:   user.Id,
			FromRole: entity.UserRoleTenant,
			ToRole:   entity.UserRoleOwner,
			Status:   entity.RoleChangeStatusPending,
		}
		err := uow.RoleChangeRepository().Create(ctx, dup)
		assert.ErrorIs(t, err, entity.ErrDuplicateRequest)
	})
}

func TestCertificationRoundTrip(t *testing.T) {
	gormDB := connectDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	owner := &entity.User{
		Id:       uuid.New(),
		Email:    "test-cert-owner-" + uuid.New().String() + "@example.com",
		FullName: "Cert Owner",
		Role:     entity.UserRoleOwner,
		Status:   entity.UserStatusActive,
	}
	tenant := &entity.User{
		Id:       uuid.New(),
		Email:    "test-cert-tenant-" + uuid.New().String() + "@example.com",
		FullName: "Cert Tenant",
		Role:     entity.UserRoleTenant,
		Status:   entity.UserStatusActive,
	}
	assert.NoError(t, uow.UserRepository().Create(ctx, owner))
	assert.NoError(t, uow.UserRepository().Create(ctx, tenant))

	newLease := func(label string) *entity.Lease {
		lease := &entity.Lease{
			ID:            uuid.New(),
			PropertyLabel: label,
			OwnerID:       owner.Id,
			TenantID:      tenant.Id,
			MonthlyRent:   250000,
			Status:        entity.LeaseStatusActive,
		}
		assert.NoError(t, uow.LeaseRepository().Create(ctx, lease))
		return lease
	}

	// Two pending certifications on different leases, neither numbered yet.
	// The number column is only stamped on approval, so un-numbered rows
	// must coexist without tripping the unique index.
	first := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     newLease("Villa Cocody").ID,
		Status:      entity.CertificationStatusPending,
		RequestedAt: time.Now(),
	}
	second := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     newLease("Studio Plateau").ID,
		Status:      entity.CertificationStatusPending,
		RequestedAt: time.Now(),
	}
	assert.NoError(t, uow.CertificationRepository().Create(ctx, first))
	assert.NoError(t, uow.CertificationRepository().Create(ctx, second),
		"a second un-numbered certification must not read as a duplicate")

	t.Run("Fetch by id", func(t *testing.T) {
		found, err := uow.CertificationRepository().FindOne(ctx, specification.ByID{ID: first.ID})
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, entity.CertificationStatusPending, found.Status)
		assert.Empty(t, found.CertificationNumber)
	})

	// Runs last: the unique violation aborts the surrounding transaction.
	t.Run("Second certification on the same lease is rejected", func(t *testing.T) {
		dup := &entity.Certification{
			ID:          uuid.New(),
			LeaseID:     first.LeaseID,
			Status:      entity.CertificationStatusPending,
			RequestedAt: time.Now(),
		}
		err := uow.CertificationRepository().Create(ctx, dup)
		assert.ErrorIs(t, err, entity.ErrDuplicateRequest)
	})
}

func TestMandateRoundTrip(t *testing.T) {
	gormDB := connectDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	owner := &entity.User{
		Id:       uuid.New(),
		Email:    "test-owner-" + uuid.New().String() + "@example.com",
		FullName: "Mandate Owner",
		Role:     entity.UserRoleOwner,
		Status:   entity.UserStatusActive,
	}
	agency := &entity.User{
		Id:       uuid.New(),
		Email:    "test-agency-" + uuid.New().String() + "@example.com",
		FullName: "Mandate Agency",
		Role:     entity.UserRoleAgency,
		Status:   entity.UserStatusActive,
	}
	assert.NoError(t, uow.UserRepository().Create(ctx, owner))
	assert.NoError(t, uow.UserRepository().Create(ctx, agency))

	rate := 8.5
	mandate := &entity.Mandate{
		ID:             uuid.New(),
		OwnerID:        owner.Id,
		AgencyID:       agency.Id,
		Status:         entity.MandateStatusPending,
		CommissionRate: &rate,
		StartDate:      time.Now(),
		EndDate:        time.Now().Add(365 * 24 * time.Hour),
	}
	assert.NoError(t, uow.MandateRepository().Create(ctx, mandate))

	t.Run("Party specification matches both sides", func(t *testing.T) {
		forOwner, err := uow.MandateRepository().FindAll(ctx, specification.MandateParty{UserID: owner.Id})
		assert.NoError(t, err)
		assert.Len(t, forOwner, 1)

		forAgency, err := uow.MandateRepository().FindAll(ctx, specification.MandateParty{UserID: agency.Id})
		assert.NoError(t, err)
		assert.Len(t, forAgency, 1)

		stranger, err := uow.MandateRepository().FindAll(ctx, specification.MandateParty{UserID: uuid.New()})
		assert.NoError(t, err)
		assert.Len(t, stranger, 0)
	})

	t.Run("Activate mandate", func(t *testing.T) {
		mandate.Status = entity.MandateStatusActive
		assert.NoError(t, uow.MandateRepository().Update(ctx, mandate))

		found, err := uow.MandateRepository().FindOne(ctx, specification.ByID{ID: mandate.ID})
		assert.NoError(t, err)
		assert.Equal(t, entity.MandateStatusActive, found.Status)
	})
}
