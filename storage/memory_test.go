package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CampaignCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	campaigns := store.Campaigns()

	c := &Campaign{ID: "c1", Name: "Food bank", Goal: 100, Status: StatusPending}
	require.NoError(t, campaigns.Create(ctx, c))
	assert.Equal(t, int64(1), c.Version)

	err := campaigns.Create(ctx, &Campaign{ID: "c1"})
	assert.ErrorIs(t, err, ErrItemWithIDAlreadyExists)

	first, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)
	second, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)

	first.Status = StatusApproved
	require.NoError(t, campaigns.Update(ctx, first))

	second.Status = StatusRejected
	assert.ErrorIs(t, campaigns.Update(ctx, second), ErrConflict)

	stored, err := campaigns.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
	assert.Equal(t, int64(2), stored.Version)
}

func TestMemoryStore_GetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Sessions().Create(ctx, &VotingSession{
		ID:        "2025-01-05",
		Active:    true,
		Campaigns: []SessionCampaign{{ID: "a"}},
	}))

	s, err := store.Sessions().Get(ctx, "2025-01-05")
	require.NoError(t, err)
	s.Campaigns[0].Votes = 42

	again, err := store.Sessions().Get(ctx, "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Campaigns[0].Votes)
}

func TestMemoryStore_TransactionCommitsAtomically(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Campaigns().Create(ctx, &Campaign{ID: "c1", Goal: 10}))

	boom := errors.New("boom")
	err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.GetCampaign(ctx, "c1")
		if err != nil {
			return err
		}
		c.Raised = 5
		tx.PutCampaign(c)
		tx.PutDonation(&Donation{ID: "d1", UserID: "u1", Amount: 5, CampaignID: "c1"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := store.Campaigns().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Raised)
	_, err = store.Donations().Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.GetCampaign(ctx, "c1")
		if err != nil {
			return err
		}
		c.Raised = 5
		tx.PutCampaign(c)
		tx.PutDonation(&Donation{ID: "d1", UserID: "u1", Amount: 5, CampaignID: "c1"})
		return nil
	})
	require.NoError(t, err)

	c, err = store.Campaigns().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, c.Raised)
	assert.Equal(t, int64(2), c.Version)
	d, err := store.Donations().Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Version)
}

func TestMemoryStore_TransactionSeesItsOwnWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		tx.PutDonation(&Donation{ID: "d1", Amount: 1, CampaignID: GeneralCampaignID, VotingSessionID: "s1"})
		return nil
	}))

	err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		tx.PutDonation(&Donation{ID: "d2", Amount: 2, CampaignID: GeneralCampaignID, VotingSessionID: "s1"})
		d1, err := tx.GetDonation(ctx, "d1")
		if err != nil {
			return err
		}
		tx.DeleteDonation(d1)

		ledger, err := tx.SessionDonations(ctx, "s1")
		if err != nil {
			return err
		}
		require.Len(t, ledger, 1)
		assert.Equal(t, "d2", ledger[0].ID)

		_, err = tx.GetDonation(ctx, "d1")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	remaining, err := store.Donations().ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "d2", remaining[0].ID)
}

func TestMemoryStore_BlindOverwriteFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Campaigns().Create(ctx, &Campaign{ID: "c1", Raised: 3}))

	err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		tx.PutCampaign(&Campaign{ID: "c1", Raised: 100})
		return nil
	})
	assert.ErrorIs(t, err, ErrConflict)

	c, err := store.Campaigns().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Raised)
}

func TestMemoryStore_ReportCreatedOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	create := func() error {
		return store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
			tx.CreateReport(&WeeklyReport{ID: "2025-01-05", TotalAmount: 10})
			return nil
		})
	}
	require.NoError(t, create())
	assert.ErrorIs(t, create(), ErrItemWithIDAlreadyExists)

	reports, err := store.Reports().ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestMemoryStore_SessionOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sessions := store.Sessions()
	require.NoError(t, sessions.Create(ctx, &VotingSession{ID: "2025-01-05", StartDate: 1}))
	require.NoError(t, sessions.Create(ctx, &VotingSession{ID: "2025-01-12", StartDate: 2}))
	require.NoError(t, sessions.Create(ctx, &VotingSession{ID: "2025-01-19", StartDate: 3, Active: true}))

	recent, err := sessions.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2025-01-19", recent[0].ID)
	assert.Equal(t, "2025-01-12", recent[1].ID)

	active, err := sessions.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2025-01-19", active[0].ID)

	closed, err := sessions.ListClosed(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, closed, 2)
}

func TestMemoryStore_NotificationInbox(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	inbox := store.Notifications()
	base := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	require.NoError(t, inbox.Create(ctx, &Notification{UserID: "u1", ID: "n1", Timestamp: base}))
	require.NoError(t, inbox.Create(ctx, &Notification{UserID: "u1", ID: "n2", Timestamp: base.Add(time.Minute)}))

	list, err := inbox.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)

	require.NoError(t, inbox.MarkRead(ctx, "u1", "n1"))
	assert.ErrorIs(t, inbox.MarkRead(ctx, "u1", "missing"), ErrNotFound)

	list, err = inbox.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, list[1].Read)
	assert.False(t, list[0].Read)
}
