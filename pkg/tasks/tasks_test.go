package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncSubscriptionsTask(t *testing.T) {
	task, err := NewSyncSubscriptionsTask("sid-1")
	require.NoError(t, err)
	assert.Equal(t, TypeSyncSubscriptions, task.Type())

	p, err := ParseSyncSubscriptionsPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", p.SessionID)
}

func TestNewSyncSubscriptionsTaskRequiresSession(t *testing.T) {
	_, err := NewSyncSubscriptionsTask("")
	assert.Error(t, err)
}

func TestParseSyncSubscriptionsPayloadInvalid(t *testing.T) {
	_, err := ParseSyncSubscriptionsPayload(asynq.NewTask(TypeSyncSubscriptions, []byte("{")))
	assert.Error(t, err)

	_, err = ParseSyncSubscriptionsPayload(asynq.NewTask(TypeSyncSubscriptions, []byte(`{}`)))
	assert.Error(t, err)
}
