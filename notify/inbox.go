package notify

import (
	"context"
	"errors"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
)

// Inbox reads and acknowledges a user's notifications. Broadcasts addressed to
// BroadcastUserID are merged into every inbox.
type Inbox struct {
	Storage storage.NotificationStorage
}

func NewInbox(s storage.NotificationStorage) *Inbox {
	return &Inbox{Storage: s}
}

// List returns the user's notifications merged with broadcasts, newest first.
func (i *Inbox) List(ctx context.Context, userID string) ([]*storage.Notification, error) {
	own, err := i.Storage.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userID == BroadcastUserID {
		return own, nil
	}
	broadcasts, err := i.Storage.ListByUser(ctx, BroadcastUserID)
	if err != nil {
		return nil, err
	}
	return mergeNewestFirst(own, broadcasts), nil
}

func mergeNewestFirst(a, b []*storage.Notification) []*storage.Notification {
	out := make([]*storage.Notification, 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		if a[0].SortKey >= b[0].SortKey {
			out = append(out, a[0])
			a = a[1:]
		} else {
			out = append(out, b[0])
			b = b[1:]
		}
	}
	out = append(out, a...)
	return append(out, b...)
}

func (i *Inbox) MarkRead(ctx context.Context, userID, id string) error {
	return i.Storage.MarkRead(ctx, userID, id)
}

// MarkAllRead marks the user's own unread notifications as read and returns how many
// changed. Broadcasts are shared and stay untouched.
func (i *Inbox) MarkAllRead(ctx context.Context, userID string) (int, error) {
	own, err := i.Storage.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	marked := 0
	for _, n := range own {
		if n.Read {
			continue
		}
		if err := i.Storage.MarkRead(ctx, userID, n.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			logging.Log.Errorf("NOTIFY: failed to mark %s read for %s: %v", n.ID, userID, err)
			return marked, err
		}
		marked++
	}
	return marked, nil
}
