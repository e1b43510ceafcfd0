package service

import (
	"context"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/memory"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPrerequisiteService interface {
	Check(ctx context.Context, userId uuid.UUID, targetRole entity.UserRole) (*dto.PrerequisiteCheckResponse, error)
	Invalidate(userId uuid.UUID)
}

type prerequisiteService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.PrerequisiteCache
	logger     logger.ILogger
}

func NewPrerequisiteService(uowFactory unitofwork.RepositoryFactory, cache *memory.PrerequisiteCache, log logger.ILogger) IPrerequisiteService {
	return &prerequisiteService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

// requirement is one row of the eligibility checklist.
type requirement struct {
	code           string
	met            func(u *entity.User) bool
	recommendation string
}

func ownerRequirements() []requirement {
	return []requirement{
		{
			code:           "email_verified",
			met:            func(u *entity.User) bool { return u.EmailVerified },
			recommendation: "Confirm your email address from the link we sent you",
		},
		{
			code:           "phone_verified",
			met:            func(u *entity.User) bool { return u.PhoneVerified },
			recommendation: "Verify your phone number via SMS code",
		},
		{
			code:           "identity_verified",
			met:            func(u *entity.User) bool { return u.IdentityVerified },
			recommendation: "Upload a government-issued ID to verify your identity",
		},
		{
			code:           "profile_complete",
			met:            func(u *entity.User) bool { return u.Phone != "" && u.City != "" },
			recommendation: "Fill in your phone number and city on your profile",
		},
	}
}

func agencyRequirements() []requirement {
	// Agencies need everything an owner needs plus an active account in
	// good standing.
	reqs := ownerRequirements()
	reqs = append(reqs, requirement{
		code:           "account_active",
		met:            func(u *entity.User) bool { return u.Status == entity.UserStatusActive },
		recommendation: "Your account must be activated before registering as an agency",
	})
	return reqs
}

// Check evaluates the prerequisite checklist for the target role. Any
// lookup failure yields the conservative answer: cannot upgrade.
func (s *prerequisiteService) Check(ctx context.Context, userId uuid.UUID, targetRole entity.UserRole) (*dto.PrerequisiteCheckResponse, error) {
	if !targetRole.IsUpgradeTarget() {
		return nil, entity.ErrInvalidTransition
	}

	if cached, found := s.cache.Get(userId, string(targetRole)); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		s.logger.Warn("Prerequisite", "User lookup failed, denying upgrade check", map[string]interface{}{
			"user_id": userId.String(),
		})
		// Callers still get a well-formed response; it just says no.
		return &dto.PrerequisiteCheckResponse{
			CanUpgrade:          false,
			TargetRole:          string(targetRole),
			MissingRequirements: []string{"profile_unavailable"},
		}, nil
	}

	if user.Role != entity.UserRoleTenant {
		// Already upgraded (or admin); nothing further to request.
		res := &dto.PrerequisiteCheckResponse{
			CanUpgrade:           false,
			TargetRole:           string(targetRole),
			MissingRequirements:  []string{"already_" + string(user.Role)},
			CompletionPercentage: 100,
		}
		s.cache.Save(userId, string(targetRole), res)
		return res, nil
	}

	var reqs []requirement
	if targetRole == entity.UserRoleAgency {
		reqs = agencyRequirements()
	} else {
		reqs = ownerRequirements()
	}

	var missing []string
	var recommendations []string
	metCount := 0
	for _, r := range reqs {
		if r.met(user) {
			metCount++
			continue
		}
		missing = append(missing, r.code)
		recommendations = append(recommendations, r.recommendation)
	}

	res := &dto.PrerequisiteCheckResponse{
		CanUpgrade:           len(missing) == 0,
		TargetRole:           string(targetRole),
		MissingRequirements:  missing,
		CompletionPercentage: metCount * 100 / len(reqs),
		Recommendations:      recommendations,
	}

	s.cache.Save(userId, string(targetRole), res)
	return res, nil
}

func (s *prerequisiteService) Invalidate(userId uuid.UUID) {
	s.cache.Invalidate(userId)
}
