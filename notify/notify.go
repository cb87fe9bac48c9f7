package notify

import (
	"context"
	"errors"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/google/uuid"
)

const (
	TypeCampaignApproved  = "campaign_approved"
	TypeCampaignRejected  = "campaign_rejected"
	TypeCampaignCompleted = "campaign_completed"
	TypeCampaignWin       = "campaign_win"
	TypeVotingStarted     = "voting_started"
	TypeVotingEndingSoon  = "voting_ending_soon"
)

// BroadcastUserID addresses a notification to every user.
const BroadcastUserID = "all"

// Notifier delivers a message to a user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, message string) error
}

// Send delivers through n and only logs a failure. Financial operations call it after
// their transaction committed, so nothing it does can undo them.
func Send(ctx context.Context, n Notifier, userID, kind, message string) {
	if n == nil || userID == "" {
		return
	}
	if err := n.Notify(ctx, userID, kind, message); err != nil {
		logging.Log.Warnf("NOTIFY: failed to send %s to %s: %v", kind, userID, err)
		return
	}
	logging.Log.Debugf("NOTIFY: sent %s to %s", kind, userID)
}

// StoreNotifier persists notifications in the user's inbox.
type StoreNotifier struct {
	Storage storage.NotificationStorage
	Clock   func() time.Time
}

func NewStoreNotifier(s storage.NotificationStorage) *StoreNotifier {
	return &StoreNotifier{Storage: s, Clock: time.Now}
}

func (n *StoreNotifier) Notify(ctx context.Context, userID, kind, message string) error {
	return n.Storage.Create(ctx, &storage.Notification{
		UserID:    userID,
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		Timestamp: n.Clock().UTC(),
	})
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, userID, kind, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, userID, kind, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
