package unitofwork

import (
	"context"

	"immoflow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RoleChangeRepository() contract.RoleChangeRepository
	CertificationRepository() contract.CertificationRepository
	MandateRepository() contract.MandateRepository
	LeaseRepository() contract.LeaseRepository
	ReviewSettingsRepository() contract.ReviewSettingsRepository
}
