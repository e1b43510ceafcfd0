package unitofwork

import (
	"context"
	"fmt"

	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction (nil when outside a transaction)
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RoleChangeRepository() contract.RoleChangeRepository {
	return implementation.NewRoleChangeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CertificationRepository() contract.CertificationRepository {
	return implementation.NewCertificationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MandateRepository() contract.MandateRepository {
	return implementation.NewMandateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LeaseRepository() contract.LeaseRepository {
	return implementation.NewLeaseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReviewSettingsRepository() contract.ReviewSettingsRepository {
	return implementation.NewReviewSettingsRepository(u.getDB())
}
