package service

import (
	"context"
	"encoding/json"
	"testing"

	"immoflow-be/internal/model"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildAlertTemplateSubstitution(t *testing.T) {
	s := &AlertService{}
	config := &model.AlertType{
		Code:        "ROLE_REQUEST_APPROVED",
		DisplayName: "Role Change Approved",
		Template:    "Your request to become {to_role} has been approved",
		Severity:    "info",
		Category:    "role_change",
	}

	requestID := uuid.New()
	userID := uuid.New()
	evt := events.New("ROLE_REQUEST_APPROVED", map[string]interface{}{
		"to_role":     "owner",
		"user_id":     userID.String(),
		"entity_type": "role_change_request",
		"entity_id":   requestID.String(),
	})

	alert := s.buildAlert(&userID, config, evt)

	assert.Equal(t, "Your request to become owner has been approved", alert.Message)
	assert.Equal(t, "Role Change Approved", alert.Title)
	assert.Equal(t, "role_change_request", alert.EntityType)
	assert.NotNil(t, alert.EntityID)
	assert.Equal(t, requestID, *alert.EntityID)
	assert.False(t, alert.Dismissed)

	var meta map[string]interface{}
	assert.NoError(t, json.Unmarshal(alert.Metadata, &meta))
	assert.Equal(t, "/role_change_requests/"+requestID.String(), meta["action_url"])
}

func TestBuildAlertLeavesUnknownPlaceholders(t *testing.T) {
	s := &AlertService{}
	config := &model.AlertType{
		Code:     "CERTIFICATION_REVOKED",
		Template: "Certification revoked. Reason: {reason}",
	}

	// Payload without the reason key: the placeholder stays visible rather
	// than rendering an empty message.
	alert := s.buildAlert(nil, config, events.New("CERTIFICATION_REVOKED", map[string]interface{}{}))
	assert.Equal(t, "Certification revoked. Reason: {reason}", alert.Message)
}

func TestResolveRecipientsSelf(t *testing.T) {
	s := &AlertService{logger: noopLogger{}}
	userID := uuid.New()

	got, err := s.resolveRecipients(context.Background(), &model.AlertType{TargetType: "SELF"},
		events.New("ROLE_REQUEST_APPROVED", map[string]interface{}{"user_id": userID.String()}))
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, got)
}

func TestResolveRecipientsParties(t *testing.T) {
	s := &AlertService{logger: noopLogger{}}
	a, b := uuid.New(), uuid.New()

	t.Run("explicit parties list", func(t *testing.T) {
		got, err := s.resolveRecipients(context.Background(), &model.AlertType{TargetType: "PARTIES"},
			events.New("CERTIFICATION_APPROVED", map[string]interface{}{
				"parties": []interface{}{a.String(), b.String()},
			}))
		assert.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a, b}, got)
	})

	t.Run("mandate owner and agency", func(t *testing.T) {
		got, err := s.resolveRecipients(context.Background(), &model.AlertType{TargetType: "PARTIES"},
			events.New("MANDATE_ACCEPTED", map[string]interface{}{
				"owner_id":  a.String(),
				"agency_id": b.String(),
			}))
		assert.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a, b}, got)
	})

	t.Run("malformed ids are skipped", func(t *testing.T) {
		got, err := s.resolveRecipients(context.Background(), &model.AlertType{TargetType: "PARTIES"},
			events.New("MANDATE_ACCEPTED", map[string]interface{}{
				"owner_id":  "not-a-uuid",
				"agency_id": b.String(),
			}))
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{b}, got)
	})
}

// noopLogger satisfies logger.ILogger for tests that only need the warn path.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
