package tasks

import (
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
)

const (
	TypeSyncSubscriptions = "subscriptions:sync"
)

// SyncSubscriptionsTaskPayload identifies the session whose tokens the
// worker uses for the sync.
type SyncSubscriptionsTaskPayload struct {
	SessionID string
}

// NewSyncSubscriptionsTask builds a sync task for sessionID. Syncs are never
// retried: a failed sync is reported and the user triggers a new one.
func NewSyncSubscriptionsTask(sessionID string) (*asynq.Task, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	payload, err := json.Marshal(SyncSubscriptionsTaskPayload{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSyncSubscriptions, payload, asynq.MaxRetry(0)), nil
}

// ParseSyncSubscriptionsPayload decodes the payload of a sync task.
func ParseSyncSubscriptionsPayload(t *asynq.Task) (SyncSubscriptionsTaskPayload, error) {
	var p SyncSubscriptionsTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, err
	}
	if p.SessionID == "" {
		return p, errors.New("session id is missing from payload")
	}
	return p, nil
}
