package mapper

import (
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
)

// RoleChangeToAdminResponse converts entity to admin queue DTO
func RoleChangeToAdminResponse(r *entity.RoleChangeRequest, settings *entity.ReviewSettings, now time.Time) *dto.AdminRoleChangeListResponse {
	if r == nil {
		return nil
	}

	res := &dto.AdminRoleChangeListResponse{
		Id:          r.ID,
		FromRole:    string(r.FromRole),
		ToRole:      string(r.ToRole),
		Status:      string(r.Status),
		RequestData: stringifyMap(r.RequestData),
		Documents:   r.Documents,
		AdminNotes:  r.AdminNotes,
		RequestedAt: r.CreatedAt,
		ReviewedAt:  r.ReviewedAt,
		User: dto.AdminRequestUserInfo{
			Id:       r.User.Id,
			Email:    r.User.Email,
			FullName: r.User.FullName,
			Role:     string(r.User.Role),
		},
	}

	if !r.Status.IsTerminal() && settings != nil {
		res.IsLate = settings.IsLate(r.CreatedAt, now)
	}

	return res
}

// RoleChangesToAdminResponse converts multiple entities
func RoleChangesToAdminResponse(requests []*entity.RoleChangeRequest, settings *entity.ReviewSettings, now time.Time) []*dto.AdminRoleChangeListResponse {
	var res []*dto.AdminRoleChangeListResponse
	for _, r := range requests {
		res = append(res, RoleChangeToAdminResponse(r, settings, now))
	}
	return res
}

// RoleChangeToUserResponse converts entity to the requester's own view
func RoleChangeToUserResponse(r *entity.RoleChangeRequest) *dto.UserRoleChangeListResponse {
	if r == nil {
		return nil
	}
	return &dto.UserRoleChangeListResponse{
		Id:          r.ID,
		FromRole:    string(r.FromRole),
		ToRole:      string(r.ToRole),
		Status:      string(r.Status),
		Documents:   r.Documents,
		AdminNotes:  r.AdminNotes,
		RequestedAt: r.CreatedAt,
		ReviewedAt:  r.ReviewedAt,
	}
}

// CertificationToAdminResponse converts entity to admin review DTO.
// Lateness is measured from requested_at, the same stamp the deadline
// sweep uses.
func CertificationToAdminResponse(c *entity.Certification, settings *entity.ReviewSettings, now time.Time) *dto.AdminCertificationListResponse {
	if c == nil {
		return nil
	}

	res := &dto.AdminCertificationListResponse{
		Id:                  c.ID,
		LeaseId:             c.LeaseID,
		PropertyLabel:       c.Lease.PropertyLabel,
		CertificationNumber: c.CertificationNumber,
		Status:              string(c.Status),
		Documents:           c.Documents,
		AdminNotes:          c.ReviewerNotes,
		RequestedAt:         c.RequestedAt,
		ReviewedAt:          c.ReviewedAt,
	}

	if !c.Status.IsTerminal() && c.Status != entity.CertificationStatusApproved && settings != nil {
		res.IsLate = settings.IsLate(c.RequestedAt, now)
	}

	return res
}

// CertificationsToAdminResponse converts multiple entities
func CertificationsToAdminResponse(certs []*entity.Certification, settings *entity.ReviewSettings, now time.Time) []*dto.AdminCertificationListResponse {
	var res []*dto.AdminCertificationListResponse
	for _, c := range certs {
		res = append(res, CertificationToAdminResponse(c, settings, now))
	}
	return res
}

// CertificationToUserResponse converts entity to the requester's view
func CertificationToUserResponse(c *entity.Certification) *dto.UserCertificationListResponse {
	if c == nil {
		return nil
	}
	return &dto.UserCertificationListResponse{
		Id:                  c.ID,
		LeaseId:             c.LeaseID,
		PropertyLabel:       c.Lease.PropertyLabel,
		CertificationNumber: c.CertificationNumber,
		Status:              string(c.Status),
		Documents:           c.Documents,
		RequestedAt:         c.RequestedAt,
		ReviewedAt:          c.ReviewedAt,
		ExpiresAt:           c.ExpiresAt,
	}
}

// MandateToResponse converts entity to list DTO with derived expiry flags
func MandateToResponse(m *entity.Mandate, now time.Time) *dto.MandateListResponse {
	if m == nil {
		return nil
	}
	return &dto.MandateListResponse{
		Id: m.ID,
		Owner: dto.MandatePartyInfo{
			Id:       m.Owner.Id,
			Email:    m.Owner.Email,
			FullName: m.Owner.FullName,
		},
		Agency: dto.MandatePartyInfo{
			Id:       m.Agency.Id,
			Email:    m.Agency.Email,
			FullName: m.Agency.FullName,
		},
		Status:         string(m.Status),
		CommissionRate: m.CommissionRate,
		FixedFee:       m.FixedFee,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsExpired:      m.IsExpired(now),
		IsExpiringSoon: m.IsExpiringSoon(now),
		CreatedAt:      m.CreatedAt,
	}
}

func stringifyMap(in map[string]interface{}) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
