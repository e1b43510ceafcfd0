package mapper

import (
	"testing"
	"time"

	"immoflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleChangeToAdminResponseLateFlag(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	settings := &entity.ReviewSettings{DeadlineHours: 72}

	tests := []struct {
		name      string
		status    entity.RoleChangeStatus
		createdAt time.Time
		wantLate  bool
	}{
		{"pending within deadline", entity.RoleChangeStatusPending, now.Add(-24 * time.Hour), false},
		{"pending past deadline", entity.RoleChangeStatusPending, now.Add(-80 * time.Hour), true},
		{"under_review past deadline", entity.RoleChangeStatusUnderReview, now.Add(-80 * time.Hour), true},
		{"approved never flags late", entity.RoleChangeStatusApproved, now.Add(-500 * time.Hour), false},
		{"rejected never flags late", entity.RoleChangeStatusRejected, now.Add(-500 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &entity.RoleChangeRequest{
				ID:        uuid.New(),
				FromRole:  entity.UserRoleTenant,
				ToRole:    entity.UserRoleOwner,
				Status:    tt.status,
				CreatedAt: tt.createdAt,
			}
			res := RoleChangeToAdminResponse(r, settings, now)
			assert.Equal(t, tt.wantLate, res.IsLate)
		})
	}
}

func TestRoleChangeToAdminResponseNilSettings(t *testing.T) {
	r := &entity.RoleChangeRequest{
		Status:    entity.RoleChangeStatusPending,
		CreatedAt: time.Now().Add(-1000 * time.Hour),
	}
	res := RoleChangeToAdminResponse(r, nil, time.Now())
	assert.False(t, res.IsLate)
}

func TestCertificationToAdminResponseLateFlag(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	settings := &entity.ReviewSettings{DeadlineHours: 72}

	tests := []struct {
		name        string
		status      entity.CertificationStatus
		requestedAt time.Time
		wantLate    bool
	}{
		{"pending within deadline", entity.CertificationStatusPending, now.Add(-24 * time.Hour), false},
		{"pending past deadline", entity.CertificationStatusPending, now.Add(-80 * time.Hour), true},
		{"under_review past deadline", entity.CertificationStatusUnderReview, now.Add(-80 * time.Hour), true},
		{"approved never flags late", entity.CertificationStatusApproved, now.Add(-500 * time.Hour), false},
		{"rejected never flags late", entity.CertificationStatusRejected, now.Add(-500 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &entity.Certification{
				ID:          uuid.New(),
				LeaseID:     uuid.New(),
				Status:      tt.status,
				RequestedAt: tt.requestedAt,
			}
			res := CertificationToAdminResponse(c, settings, now)
			assert.Equal(t, tt.wantLate, res.IsLate)
		})
	}
}

func TestCertificationToAdminResponseNilSettings(t *testing.T) {
	c := &entity.Certification{
		Status:      entity.CertificationStatusPending,
		RequestedAt: time.Now().Add(-1000 * time.Hour),
	}
	res := CertificationToAdminResponse(c, nil, time.Now())
	assert.False(t, res.IsLate)
}

func TestMandateToResponseDerivedFlags(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	owner := entity.User{Id: uuid.New(), Email: "owner@example.com", FullName: "Owner"}
	agency := entity.User{Id: uuid.New(), Email: "agency@example.com", FullName: "Agency"}

	m := &entity.Mandate{
		ID:      uuid.New(),
		Status:  entity.MandateStatusActive,
		EndDate: now.Add(10 * 24 * time.Hour),
		Owner:   owner,
		Agency:  agency,
	}

	res := MandateToResponse(m, now)
	assert.False(t, res.IsExpired)
	assert.True(t, res.IsExpiringSoon)
	assert.Equal(t, owner.Id, res.Owner.Id)
	assert.Equal(t, agency.Id, res.Agency.Id)

	// Past the end date the stored status is untouched but the derived
	// flag flips.
	m.EndDate = now.Add(-time.Hour)
	res = MandateToResponse(m, now)
	assert.True(t, res.IsExpired)
	assert.False(t, res.IsExpiringSoon)
	assert.Equal(t, string(entity.MandateStatusActive), res.Status)
}

func TestStringifyMapDropsNonStrings(t *testing.T) {
	in := map[string]interface{}{
		"company_name": "Immo SARL",
		"years_active": 4,
	}
	out := stringifyMap(in)
	assert.Equal(t, map[string]string{"company_name": "Immo SARL"}, out)
	assert.Nil(t, stringifyMap(nil))
}
