package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"immoflow-be/internal/model"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository"
	"immoflow-be/pkg/events"
	pkgNats "immoflow-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AlertDelivery defines how to push real-time alerts.
// Typically implemented by the WebSocket Hub.
type AlertDelivery interface {
	Send(userID uuid.UUID, alert model.Alert)
	SendToRole(role string, alert model.Alert)
}

// AlertService is the NATS worker that turns workflow events into alert
// rows plus websocket pushes. Alert emission is best-effort: the workflow
// transition that produced the event has already committed.
type AlertService struct {
	repo       repository.AlertRepository
	subscriber *pkgNats.Subscriber
	delivery   AlertDelivery
	logger     logger.ILogger
}

func NewAlertService(repo repository.AlertRepository, sub *pkgNats.Subscriber, delivery AlertDelivery, log logger.ILogger) *AlertService {
	return &AlertService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *AlertService) Start() {
	err := s.subscriber.Subscribe("workflow.>", "alert-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("AlertService", "Failed to start alert subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("AlertService", "Alert service started, listening to workflow.>", nil)
}

func (s *AlertService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "workflow.")

	config, err := s.repo.GetAlertTypeByCode(ctx, typeCode)
	if err != nil {
		// Unregistered event codes are dropped, not retried: a retry loop
		// cannot make a registry row appear.
		s.logger.Warn("AlertService", fmt.Sprintf("Alert type not found for code: '%s'", typeCode), map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !config.IsActive {
		return nil
	}

	// Role-wide alerts are stored once and fanned out by role matching.
	if config.TargetType == "ROLE" {
		alert := s.buildAlert(nil, config, event)
		alert.TargetRole = config.TargetRole

		if err := s.repo.CreateAlert(ctx, &alert); err != nil {
			s.logger.Error("AlertService", "Error saving role alert", map[string]interface{}{"error": err})
			return err // NATS will retry
		}
		if s.delivery != nil {
			s.delivery.SendToRole(config.TargetRole, alert)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("AlertService", fmt.Sprintf("Error resolving recipients for %s", event.EventType()), map[string]interface{}{"error": err})
		return err
	}

	for _, userID := range recipients {
		uid := userID
		alert := s.buildAlert(&uid, config, event)

		if err := s.repo.CreateAlert(ctx, &alert); err != nil {
			s.logger.Error("AlertService", fmt.Sprintf("Error saving alert for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, alert)
		}
	}

	return nil
}

func (s *AlertService) resolveRecipients(ctx context.Context, config *model.AlertType, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	payload := event.Payload()

	switch config.TargetType {
	case "SELF":
		if uidStr, ok := payload["user_id"].(string); ok {
			uid, err := uuid.Parse(uidStr)
			if err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("AlertService", fmt.Sprintf("TargetType SELF but no user_id in payload for event %s", event.EventType()), nil)
		}

	case "PARTIES":
		// Certification decisions carry the lease parties explicitly;
		// mandate events name the owner and agency instead.
		if parties, ok := payload["parties"].([]interface{}); ok {
			for _, p := range parties {
				if pStr, ok := p.(string); ok {
					if uid, err := uuid.Parse(pStr); err == nil {
						userIDs = append(userIDs, uid)
					}
				}
			}
		}
		for _, key := range []string{"owner_id", "agency_id"} {
			if idStr, ok := payload[key].(string); ok {
				if uid, err := uuid.Parse(idStr); err == nil {
					userIDs = append(userIDs, uid)
				}
			}
		}

	case "ADMIN":
		admins, err := s.repo.GetUsersByRole(ctx, "admin")
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *AlertService) buildAlert(userID *uuid.UUID, config *model.AlertType, event events.Event) model.Alert {
	// Simple template engine: {placeholder} substitution from the payload
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	entityType := ""
	var entityID *uuid.UUID

	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Alert{
		ID:             uuid.New(),
		UserID:         userID,
		TypeCode:       config.Code,
		Title:          config.DisplayName,
		Message:        msg,
		Severity:       config.Severity,
		Category:       config.Category,
		ActionRequired: config.ActionRequired,
		EntityType:     entityType,
		EntityID:       entityID,
		Metadata:       datatypes.JSON(metaJSON),
		Dismissed:      false,
		CreatedAt:      time.Now(),
	}
}

// GetAlerts fetches the alert feed for a user (personal + role-wide).
func (s *AlertService) GetAlerts(ctx context.Context, userID uuid.UUID, role string, limit, offset int) ([]model.Alert, int64, error) {
	return s.repo.GetAlertsForUser(ctx, userID, role, limit, offset)
}

// GetActiveCount fetches the number of undismissed alerts.
func (s *AlertService) GetActiveCount(ctx context.Context, userID uuid.UUID, role string) (int64, error) {
	return s.repo.GetActiveCount(ctx, userID, role)
}

// Dismiss marks one alert dismissed.
func (s *AlertService) Dismiss(ctx context.Context, alertID, userID uuid.UUID) error {
	return s.repo.Dismiss(ctx, alertID, userID)
}

// DismissAll marks every personal alert dismissed for a user.
func (s *AlertService) DismissAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DismissAll(ctx, userID)
}
