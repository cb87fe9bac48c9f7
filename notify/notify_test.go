package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPublish struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	published []recordedPublish
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.published = append(f.published, recordedPublish{channel: channel, payload: message.([]byte)})
	return redis.NewIntResult(1, nil)
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, string, string, string) error { return f.err }

var fixedNow = time.Date(2025, 1, 11, 23, 59, 0, 0, time.UTC)

func TestStoreNotifier(t *testing.T) {
	store := storage.NewMemoryStore()
	n := NewStoreNotifier(store.Notifications())
	n.Clock = func() time.Time { return fixedNow }

	require.NoError(t, n.Notify(context.Background(), "org-1", TypeCampaignWin, "You won"))

	inbox, err := store.Notifications().ListByUser(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, TypeCampaignWin, inbox[0].Type)
	assert.Equal(t, "You won", inbox[0].Message)
	assert.Equal(t, fixedNow, inbox[0].Timestamp)
	assert.False(t, inbox[0].Read)
	assert.NotEmpty(t, inbox[0].ID)
}

func TestRedisPublisher(t *testing.T) {
	client := &fakePublisher{}
	p := NewRedisPublisher(client)
	p.Clock = func() time.Time { return fixedNow }

	require.NoError(t, p.Notify(context.Background(), "u1", TypeCampaignCompleted, "Goal reached"))
	require.Len(t, client.published, 1)
	assert.Equal(t, "notifications:u1", client.published[0].channel)

	var msg Message
	require.NoError(t, json.Unmarshal(client.published[0].payload, &msg))
	assert.Equal(t, Message{UserID: "u1", Type: TypeCampaignCompleted, Message: "Goal reached", Timestamp: fixedNow}, msg)

	client.err = errors.New("connection refused")
	assert.Error(t, p.Notify(context.Background(), "u1", TypeCampaignCompleted, "again"))
}

func TestMultiJoinsErrors(t *testing.T) {
	store := storage.NewMemoryStore()
	first := errors.New("first")
	m := Multi{failingNotifier{first}, NewStoreNotifier(store.Notifications())}

	err := m.Notify(context.Background(), "u1", TypeVotingStarted, "Vote now")
	assert.ErrorIs(t, err, first)

	// The failing notifier does not stop the others.
	inbox, err := store.Notifications().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}

func TestSendSwallowsErrors(t *testing.T) {
	logging.Log = logrus.New()
	assert.NotPanics(t, func() {
		Send(context.Background(), failingNotifier{errors.New("down")}, "u1", TypeCampaignWin, "x")
		Send(context.Background(), nil, "u1", TypeCampaignWin, "x")
		Send(context.Background(), failingNotifier{}, "", TypeCampaignWin, "x")
	})
}

func TestInbox(t *testing.T) {
	logging.Log = logrus.New()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	notifications := store.Notifications()
	require.NoError(t, notifications.Create(ctx, &storage.Notification{UserID: "u1", ID: "n1", Type: TypeCampaignApproved, Timestamp: fixedNow}))
	require.NoError(t, notifications.Create(ctx, &storage.Notification{UserID: BroadcastUserID, ID: "b1", Type: TypeVotingStarted, Timestamp: fixedNow.Add(time.Hour)}))
	require.NoError(t, notifications.Create(ctx, &storage.Notification{UserID: "u1", ID: "n2", Type: TypeCampaignWin, Timestamp: fixedNow.Add(2 * time.Hour)}))

	inbox := NewInbox(notifications)
	list, err := inbox.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n2", list[0].ID)
	assert.Equal(t, "b1", list[1].ID)
	assert.Equal(t, "n1", list[2].ID)

	require.NoError(t, inbox.MarkRead(ctx, "u1", "n1"))
	assert.ErrorIs(t, inbox.MarkRead(ctx, "u1", "b1"), storage.ErrNotFound)

	marked, err := inbox.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	own, err := notifications.ListByUser(ctx, "u1")
	require.NoError(t, err)
	for _, n := range own {
		assert.True(t, n.Read)
	}
}
