package settlement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var closeTime = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

type fakeArchiver struct {
	mu       sync.Mutex
	archived []*storage.WeeklyReport
	err      error
}

func (f *fakeArchiver) Archive(_ context.Context, report *storage.WeeklyReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, report)
	return f.err
}

func setupEngine(t *testing.T) (*Engine, *storage.MemoryStore, *fakeArchiver) {
	t.Helper()
	logging.Log = logrus.New()
	store := storage.NewMemoryStore()
	archiver := &fakeArchiver{}
	engine := NewEngine(store.Sessions(), store.Reports(), store, notify.NewStoreNotifier(store.Notifications()), archiver)
	engine.ledgerDelay = time.Millisecond
	return engine, store, archiver
}

// seedSession stores campaigns, a session offering them with the given votes, and general
// donations for the session whose amounts add up to pool.
func seedSession(t *testing.T, store *storage.MemoryStore, id string, goals map[string]float64, campaignVotes []storage.SessionCampaign, donations ...float64) {
	t.Helper()
	ctx := context.Background()
	for _, c := range campaignVotes {
		require.NoError(t, store.Campaigns().Create(ctx, &storage.Campaign{
			ID: c.ID, Name: c.Name, OrganizerID: "org-" + c.ID, Goal: goals[c.ID], Status: storage.StatusApproved,
		}))
	}
	total := 0
	for _, c := range campaignVotes {
		total += c.Votes
	}
	require.NoError(t, store.Sessions().Create(ctx, &storage.VotingSession{
		ID: id, StartDate: 1, EndDate: 2, Active: true, Campaigns: campaignVotes, TotalVotes: total,
	}))
	require.NoError(t, store.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		for i, amount := range donations {
			tx.PutDonation(&storage.Donation{
				ID: id + "-d" + string(rune('0'+i)), UserID: "u1", Amount: amount,
				CampaignID: storage.GeneralCampaignID, VotingSessionID: id,
			})
		}
		return nil
	}))
}

func campaignRaised(t *testing.T, store *storage.MemoryStore, id string) float64 {
	t.Helper()
	c, err := store.Campaigns().Get(context.Background(), id)
	require.NoError(t, err)
	return c.Raised
}

func TestCloseSession_ThreeToOneSplit(t *testing.T) {
	engine, store, archiver := setupEngine(t)
	seedSession(t, store, "2025-01-05",
		map[string]float64{"A": 1000, "B": 1000},
		[]storage.SessionCampaign{{ID: "A", Name: "Alpha", Votes: 3}, {ID: "B", Name: "Beta", Votes: 1, Category: "Wellness"}},
		60, 40)

	result, err := engine.CloseSession(context.Background(), "2025-01-05", closeTime)
	require.NoError(t, err)

	assert.Equal(t, "A", result.Winner.ID)
	assert.Equal(t, 100.0, result.FinalPoolAmount)
	assert.Equal(t, []float64{67.5, 32.5}, amounts(result.Allocations))
	assert.Equal(t, 67.5, campaignRaised(t, store, "A"))
	assert.Equal(t, 32.5, campaignRaised(t, store, "B"))

	session, err := store.Sessions().Get(context.Background(), "2025-01-05")
	require.NoError(t, err)
	assert.False(t, session.Active)
	assert.Equal(t, "A", session.WinnerID)
	require.NotNil(t, session.FinalPoolAmount)
	assert.Equal(t, 100.0, *session.FinalPoolAmount)
	require.NotNil(t, session.ClosedAt)
	assert.Equal(t, closeTime, *session.ClosedAt)

	report, err := engine.GetReport(context.Background(), "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", report.WinnerName)
	assert.Equal(t, 100.0, report.TotalAmount)
	assert.Equal(t, 4, report.TotalVotes)
	require.Len(t, report.Campaigns, 2)
	assert.Equal(t, "General", report.Campaigns[0].Category)
	assert.Equal(t, "Wellness", report.Campaigns[1].Category)
	assert.Equal(t, 32.5, report.Campaigns[1].Earned)

	require.Len(t, archiver.archived, 1)
	assert.Equal(t, "2025-01-05", archiver.archived[0].ID)

	inbox, err := store.Notifications().ListByUser(context.Background(), "org-A")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, notify.TypeCampaignWin, inbox[0].Type)
}

func TestCloseSession_NoDoubleClose(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedSession(t, store, "s1",
		map[string]float64{"A": 1000, "B": 1000},
		[]storage.SessionCampaign{{ID: "A", Votes: 1}, {ID: "B", Votes: 1}},
		10)
	ctx := context.Background()

	_, err := engine.CloseSession(ctx, "s1", closeTime)
	require.NoError(t, err)
	afterFirst := []float64{campaignRaised(t, store, "A"), campaignRaised(t, store, "B")}

	_, err = engine.CloseSession(ctx, "s1", closeTime.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.Equal(t, afterFirst, []float64{campaignRaised(t, store, "A"), campaignRaised(t, store, "B")})

	reports, err := engine.ListReports(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestCloseSession_ConcurrentClosesPayOnce(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedSession(t, store, "s1",
		map[string]float64{"A": 1000},
		[]storage.SessionCampaign{{ID: "A", Votes: 1}},
		10)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.CloseSession(context.Background(), "s1", closeTime)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrAlreadyClosed)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 10.0, campaignRaised(t, store, "A"))
}

func TestCloseSession_UsesLedgerNotCachedPool(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedSession(t, store, "s1",
		map[string]float64{"A": 1000, "B": 1000},
		[]storage.SessionCampaign{{ID: "A", Votes: 1}, {ID: "B", Votes: 1}},
		0.1, 0.2, 0.3)
	// The cached pool was never updated by the seeded donations and reads zero.

	result, err := engine.CloseSession(context.Background(), "s1", closeTime)
	require.NoError(t, err)
	assert.Equal(t, 0.6, result.FinalPoolAmount)
	assert.Equal(t, 0.6, result.Report.TotalAmount)
	assert.Equal(t, []float64{0.3, 0.3}, amounts(result.Allocations))
}

func TestCloseSession_Preconditions(t *testing.T) {
	engine, store, archiver := setupEngine(t)
	ctx := context.Background()

	_, err := engine.CloseSession(ctx, "missing", closeTime)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Sessions().Create(ctx, &storage.VotingSession{ID: "empty", Active: true}))
	_, err = engine.CloseSession(ctx, "empty", closeTime)
	assert.ErrorIs(t, err, ErrNoCampaigns)

	session, err := store.Sessions().Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, session.Active)
	assert.Empty(t, archiver.archived)
}

func TestCloseSession_MissingCampaignAbortsEverything(t *testing.T) {
	engine, store, _ := setupEngine(t)
	ctx := context.Background()
	seedSession(t, store, "s1",
		map[string]float64{"A": 1000},
		[]storage.SessionCampaign{{ID: "A", Votes: 2}},
		50)
	// Add a campaign to the snapshot that does not exist in the campaigns table.
	require.NoError(t, store.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		s, err := tx.GetSession(ctx, "s1")
		if err != nil {
			return err
		}
		s.Campaigns = append(s.Campaigns, storage.SessionCampaign{ID: "ghost"})
		tx.PutSession(s)
		return nil
	}))

	_, err := engine.CloseSession(ctx, "s1", closeTime)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
	assert.Equal(t, 0.0, campaignRaised(t, store, "A"))

	session, err := store.Sessions().Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, session.Active)
	_, err = engine.GetReport(ctx, "s1")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestCloseSession_AllocationCompletesCampaign(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedSession(t, store, "s1",
		map[string]float64{"A": 50, "B": 1000},
		[]storage.SessionCampaign{{ID: "A", Name: "Alpha", Votes: 4}, {ID: "B", Name: "Beta", Votes: 0}},
		100)

	result, err := engine.CloseSession(context.Background(), "s1", closeTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, result.CompletedCampaignIDs)

	c, err := store.Campaigns().Get(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, storage.StatusCompleted, c.Status)
	assert.Equal(t, 85.0, c.Raised)

	inbox, err := store.Notifications().ListByUser(context.Background(), "org-A")
	require.NoError(t, err)
	kinds := make([]string, 0, len(inbox))
	for _, n := range inbox {
		kinds = append(kinds, n.Type)
	}
	assert.ElementsMatch(t, []string{notify.TypeCampaignWin, notify.TypeCampaignCompleted}, kinds)
}

func TestCloseSession_ArchiveFailureDoesNotFail(t *testing.T) {
	engine, store, archiver := setupEngine(t)
	archiver.err = errors.New("bucket missing")
	seedSession(t, store, "s1", map[string]float64{"A": 10}, []storage.SessionCampaign{{ID: "A"}}, 1)

	_, err := engine.CloseSession(context.Background(), "s1", closeTime)
	require.NoError(t, err)
}

func TestCloseActive(t *testing.T) {
	engine, store, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.CloseActive(ctx, closeTime)
	assert.ErrorIs(t, err, voting.ErrNoActiveSession)

	seedSession(t, store, "s1", map[string]float64{"A": 10}, []storage.SessionCampaign{{ID: "A", Votes: 1}}, 2)
	result, err := engine.CloseActive(ctx, closeTime)
	require.NoError(t, err)
	assert.Equal(t, "s1", result.Report.SessionID)

	_, err = engine.CloseActive(ctx, closeTime)
	assert.ErrorIs(t, err, voting.ErrNoActiveSession)
}

func TestCloseActive_LeavesRunningWeekOpen(t *testing.T) {
	engine, store, _ := setupEngine(t)
	ctx := context.Background()
	service := voting.NewService(store.Sessions(), store.Votes(), store,
		voting.NewSelector(store.Campaigns(), store.Sessions()),
		voting.Config{Location: time.UTC, CampaignsPerSession: 5, ExcludeRecentWeeks: 3})

	lastWeekStart, lastWeekEnd := voting.WeekRange(closeTime.Add(-time.Hour), time.UTC)
	require.NoError(t, store.Campaigns().Create(ctx, &storage.Campaign{
		ID: "A", Name: "Alpha", OrganizerID: "org-A", Goal: 1000, Status: storage.StatusApproved,
	}))
	require.NoError(t, store.Sessions().Create(ctx, &storage.VotingSession{
		ID: "2025-01-05", StartDate: lastWeekStart.UnixMilli(), EndDate: lastWeekEnd.UnixMilli(), Active: true,
		Campaigns: []storage.SessionCampaign{{ID: "A", Name: "Alpha", Votes: 2}}, TotalVotes: 2,
	}))

	// Someone opens the new week before the scheduled close runs.
	opened := closeTime.Add(time.Minute)
	current, err := service.GetOrCreateCurrentSession(ctx, opened)
	require.NoError(t, err)
	require.Equal(t, "2025-01-12", current.ID)

	result, err := engine.CloseActive(ctx, opened.Add(4*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", result.Report.SessionID)

	lastWeek, err := store.Sessions().Get(ctx, "2025-01-05")
	require.NoError(t, err)
	assert.False(t, lastWeek.Active)

	still, err := service.GetOrCreateCurrentSession(ctx, opened.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-12", still.ID)
	assert.True(t, still.Active)

	_, err = engine.CloseActive(ctx, opened.Add(6*time.Minute))
	assert.ErrorIs(t, err, voting.ErrNoActiveSession)
}
