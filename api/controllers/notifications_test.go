package controllers

import (
	"context"
	testutils "github.com/ITCS-6112-Dilio/dilio/api/controllers/testing"
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
	"time"
)

func listInbox(t *testing.T, app *testApp, userID string) []storage.Notification {
	t.Helper()
	w := testutils.PerformRequest(app.router, http.MethodGet, "/api/notifications/"+userID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var inbox []storage.Notification
	testutils.DecodeBody(t, w, &inbox)
	return inbox
}

func TestNotifications(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	notifier := notify.NewStoreNotifier(app.store.Notifications())
	tick := wednesday
	notifier.Clock = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	require.NoError(t, notifier.Notify(ctx, "org-1", notify.TypeCampaignApproved, "approved"))
	require.NoError(t, notifier.Notify(ctx, notify.BroadcastUserID, notify.TypeVotingStarted, "voting is open"))
	require.NoError(t, notifier.Notify(ctx, "org-1", notify.TypeCampaignWin, "you won"))
	require.NoError(t, notifier.Notify(ctx, "org-2", notify.TypeCampaignRejected, "rejected"))

	t.Run("Happy path - own and broadcast, newest first", func(t *testing.T) {
		inbox := listInbox(t, app, "org-1")
		require.Len(t, inbox, 3)
		assert.Equal(t, notify.TypeCampaignWin, inbox[0].Type)
		assert.Equal(t, notify.TypeVotingStarted, inbox[1].Type)
		assert.Equal(t, notify.TypeCampaignApproved, inbox[2].Type)
	})

	t.Run("Happy path - mark one read", func(t *testing.T) {
		inbox := listInbox(t, app, "org-2")
		var own storage.Notification
		for _, n := range inbox {
			if n.UserID == "org-2" {
				own = n
			}
		}
		w := testutils.PerformRequest(app.router, http.MethodPatch, "/api/notifications/org-2/"+own.ID+"/read", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		for _, n := range listInbox(t, app, "org-2") {
			if n.ID == own.ID {
				assert.True(t, n.Read)
			}
		}
	})

	t.Run("Happy path - mark all read leaves broadcasts alone", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/notifications/org-1/read-all", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var res models.MarkAllReadResponse
		testutils.DecodeBody(t, w, &res)
		assert.Equal(t, 2, res.Updated)

		for _, n := range listInbox(t, app, "org-1") {
			assert.Equal(t, n.UserID == "org-1", n.Read, n.Type)
		}
	})

	t.Run("Unhappy path - someone else's notification", func(t *testing.T) {
		inbox := listInbox(t, app, "org-1")
		w := testutils.PerformRequest(app.router, http.MethodPatch, "/api/notifications/org-2/"+inbox[0].ID+"/read", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
