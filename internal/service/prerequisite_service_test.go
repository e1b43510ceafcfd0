package service

import (
	"testing"

	"immoflow-be/internal/entity"
)

func checklistResult(reqs []requirement, u *entity.User) (missing []string, metCount int) {
	for _, r := range reqs {
		if r.met(u) {
			metCount++
			continue
		}
		missing = append(missing, r.code)
	}
	return missing, metCount
}

func TestOwnerRequirements(t *testing.T) {
	verified := &entity.User{
		EmailVerified:    true,
		PhoneVerified:    true,
		IdentityVerified: true,
		Phone:            "+2250102030405",
		City:             "Abidjan",
	}

	tests := []struct {
		name        string
		mutate      func(u *entity.User)
		wantMissing []string
	}{
		{"fully verified tenant", func(u *entity.User) {}, nil},
		{"missing email verification", func(u *entity.User) { u.EmailVerified = false }, []string{"email_verified"}},
		{"missing phone verification", func(u *entity.User) { u.PhoneVerified = false }, []string{"phone_verified"}},
		{"missing identity verification", func(u *entity.User) { u.IdentityVerified = false }, []string{"identity_verified"}},
		{"incomplete profile, no city", func(u *entity.User) { u.City = "" }, []string{"profile_complete"}},
		{"incomplete profile, no phone", func(u *entity.User) { u.Phone = "" }, []string{"profile_complete"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := *verified
			tt.mutate(&u)
			missing, _ := checklistResult(ownerRequirements(), &u)
			if len(missing) != len(tt.wantMissing) {
				t.Fatalf("missing = %v, want %v", missing, tt.wantMissing)
			}
			for i := range missing {
				if missing[i] != tt.wantMissing[i] {
					t.Errorf("missing[%d] = %s, want %s", i, missing[i], tt.wantMissing[i])
				}
			}
		})
	}
}

func TestAgencyRequirementsAddAccountActive(t *testing.T) {
	u := &entity.User{
		EmailVerified:    true,
		PhoneVerified:    true,
		IdentityVerified: true,
		Phone:            "+2250102030405",
		City:             "Abidjan",
		Status:           entity.UserStatusPending,
	}

	missing, metCount := checklistResult(agencyRequirements(), u)
	if len(missing) != 1 || missing[0] != "account_active" {
		t.Fatalf("missing = %v, want [account_active]", missing)
	}
	if metCount != 4 {
		t.Errorf("metCount = %d, want 4", metCount)
	}

	u.Status = entity.UserStatusActive
	missing, _ = checklistResult(agencyRequirements(), u)
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none for an active verified user", missing)
	}
}
