package main

import (
	"log"

	"immoflow-be/internal/model"

	"gorm.io/gorm"
)

// SeedAlertTypes populates the alert_types registry. Every workflow event
// code needs a row here or the alert worker drops the event.
func SeedAlertTypes(db *gorm.DB) {
	types := []model.AlertType{
		{
			Code:           "ROLE_REQUEST_SUBMITTED",
			DisplayName:    "New Role Change Request",
			Template:       "New request to become {to_role} from user {user_id}",
			TargetType:     "ADMIN",
			Severity:       "info",
			Category:       "role_change",
			ActionRequired: true,
			IsActive:       true,
		},
		{
			Code:        "ROLE_REQUEST_APPROVED",
			DisplayName: "Role Change Approved",
			Template:    "Your request to become {to_role} has been approved",
			TargetType:  "SELF",
			Severity:    "info",
			Category:    "role_change",
			IsActive:    true,
		},
		{
			Code:        "ROLE_REQUEST_REJECTED",
			DisplayName: "Role Change Rejected",
			Template:    "Your request to become {to_role} has been rejected. Notes: {notes}",
			TargetType:  "SELF",
			Severity:    "warning",
			Category:    "role_change",
			IsActive:    true,
		},
		{
			Code:        "ROLE_REQUEST_AUTO_CLOSED",
			DisplayName: "Role Change Request Closed",
			Template:    "Your request to become {to_role} was {decision} automatically after the review deadline passed",
			TargetType:  "SELF",
			Severity:    "warning",
			Category:    "role_change",
			IsActive:    true,
		},
		{
			Code:        "ROLE_REQUEST_CANCELLED",
			DisplayName: "Role Change Request Cancelled",
			Template:    "Request {request_id} to become {to_role} was cancelled by the requester",
			TargetType:  "ADMIN",
			Severity:    "info",
			Category:    "role_change",
			IsActive:    true,
		},
		{
			Code:           "CERTIFICATION_SUBMITTED",
			DisplayName:    "New Certification Request",
			Template:       "New lease certification request for {property_label}",
			TargetType:     "ADMIN",
			Severity:       "info",
			Category:       "certification",
			ActionRequired: true,
			IsActive:       true,
		},
		{
			Code:        "CERTIFICATION_APPROVED",
			DisplayName: "Certification Approved",
			Template:    "Your lease certification has been approved. Certificate number: {certification_number}",
			TargetType:  "PARTIES",
			Severity:    "info",
			Category:    "certification",
			IsActive:    true,
		},
		{
			Code:        "CERTIFICATION_REJECTED",
			DisplayName: "Certification Rejected",
			Template:    "The certification request for your lease has been rejected",
			TargetType:  "PARTIES",
			Severity:    "warning",
			Category:    "certification",
			IsActive:    true,
		},
		{
			Code:        "CERTIFICATION_REVOKED",
			DisplayName: "Certification Revoked",
			Template:    "The certification for your lease has been revoked. Reason: {reason}",
			TargetType:  "PARTIES",
			Severity:    "warning",
			Category:    "certification",
			IsActive:    true,
		},
		{
			Code:           "MANDATE_INVITED",
			DisplayName:    "Mandate Invitation",
			Template:       "A property owner invited your agency to a management mandate",
			TargetType:     "PARTIES",
			Severity:       "info",
			Category:       "mandate",
			ActionRequired: true,
			IsActive:       true,
		},
		{
			Code:        "MANDATE_ACCEPTED",
			DisplayName: "Mandate Accepted",
			Template:    "The management mandate is now active",
			TargetType:  "PARTIES",
			Severity:    "info",
			Category:    "mandate",
			IsActive:    true,
		},
		{
			Code:        "MANDATE_TERMINATED",
			DisplayName: "Mandate Terminated",
			Template:    "The management mandate has been terminated",
			TargetType:  "PARTIES",
			Severity:    "warning",
			Category:    "mandate",
			IsActive:    true,
		},
		{
			Code:           "MANDATE_EXPIRING_SOON",
			DisplayName:    "Mandate Expiring Soon",
			Template:       "A management mandate ends within 30 days. Renew or let it expire.",
			TargetType:     "PARTIES",
			Severity:       "warning",
			Category:       "mandate",
			ActionRequired: true,
			IsActive:       true,
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding alert type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Alert types seeded successfully.")
}
