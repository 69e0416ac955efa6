package service

import (
	"context"
	"log"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
)

// AuditEvent is the payload pushed to websocket subscribers for every
// recorded Action.
type AuditEvent struct {
	Event       string `json:"event"`
	ActionID    uint   `json:"action_id"`
	UserID      *uint  `json:"user_id"`
	ActionType  string `json:"action_type"`
	ContentType string `json:"content_type"`
	ObjectRepr  string `json:"object_repr"`
}

// AuditRecorder writes one Action row per tracked mutation. It is called
// explicitly from the entity services' write paths (no ORM signals) inside
// the mutation's transaction, so a committed mutation and its audit row are
// visible together.
//
// Audit is observability, not a transactional guard: a failed Action insert
// is logged and swallowed so the primary mutation is never rolled back over
// it.
type AuditRecorder struct {
	actions repository.ActionRepository
	hub     *ws.Hub
}

// NewAuditRecorder wires the recorder; hub may be nil (no live feed).
func NewAuditRecorder(actions repository.ActionRepository, hub *ws.Hub) *AuditRecorder {
	return &AuditRecorder{actions: actions, hub: hub}
}

// Record logs one audit entry. userID is nil when no actor could be
// identified; objectRepr must be a snapshot captured before the mutation so
// it survives the subject's deletion.
func (a *AuditRecorder) Record(ctx context.Context, userID *uint, actionType, contentType, objectRepr string) {
	entry := &model.Action{
		UserID:      userID,
		ActionType:  actionType,
		ContentType: contentType,
		ObjectRepr:  objectRepr,
	}
	if err := a.actions.Log(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s %s %q: %v", actionType, contentType, objectRepr, err)
		return
	}

	if a.hub != nil {
		a.hub.Publish(AuditEvent{
			Event:       "action_recorded",
			ActionID:    entry.ID,
			UserID:      entry.UserID,
			ActionType:  entry.ActionType,
			ContentType: entry.ContentType,
			ObjectRepr:  entry.ObjectRepr,
		})
	}
}
