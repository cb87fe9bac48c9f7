package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/currency"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
)

var (
	ErrSessionNotFound  = errors.New("voting session not found")
	ErrAlreadyClosed    = errors.New("voting session is already closed")
	ErrNoCampaigns      = errors.New("voting session has no campaigns")
	ErrCampaignNotFound = errors.New("campaign of the session not found")
	ErrReportNotFound   = errors.New("weekly report not found")

	// errLedgerBehind marks a donation index read that disagrees with the session's pool.
	errLedgerBehind = errors.New("session ledger disagrees with the cached pool")
)

const (
	defaultLedgerAttempts = 4
	defaultLedgerDelay    = 250 * time.Millisecond
)

// ReportArchiver keeps a copy of each weekly report outside the database.
type ReportArchiver interface {
	Archive(ctx context.Context, report *storage.WeeklyReport) error
}

type Result struct {
	Winner               storage.SessionCampaign `json:"winner"`
	FinalPoolAmount      float64                 `json:"finalPoolAmount"`
	Allocations          []Allocation            `json:"allocations"`
	Report               *storage.WeeklyReport   `json:"report"`
	CompletedCampaignIDs []string                `json:"completedCampaignIds"`
}

type Engine struct {
	sessions   storage.SessionStorage
	reports    storage.ReportStorage
	transactor storage.Transactor
	notifier   notify.Notifier
	archiver   ReportArchiver

	// ledgerAttempts bounds how often a close re-reads a lagging donation index before
	// it settles on what the index returns.
	ledgerAttempts int
	ledgerDelay    time.Duration
}

// NewEngine builds the settlement engine. notifier and archiver may be nil.
func NewEngine(sessions storage.SessionStorage, reports storage.ReportStorage, transactor storage.Transactor, notifier notify.Notifier, archiver ReportArchiver) *Engine {
	return &Engine{
		sessions:   sessions,
		reports:    reports,
		transactor: transactor,
		notifier:   notifier,
		archiver:   archiver,

		ledgerAttempts: defaultLedgerAttempts,
		ledgerDelay:    defaultLedgerDelay,
	}
}

// CloseSession settles an active session: it pays every campaign its share of the pool,
// closes the session and writes the weekly report, all in one transaction. Closing a
// session twice fails with ErrAlreadyClosed and changes nothing.
func (e *Engine) CloseSession(ctx context.Context, sessionID string, now time.Time) (*Result, error) {
	now = now.UTC()
	var (
		result     *Result
		organizers map[string]string
		err        error
	)

	for attempt := 1; ; attempt++ {
		result, organizers, err = e.settle(ctx, sessionID, now, attempt >= e.ledgerAttempts)
		if !errors.Is(err, errLedgerBehind) {
			break
		}
		logging.Log.Warnf("SETTLEMENT: %v, re-reading (attempt %d of %d)", err, attempt, e.ledgerAttempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.ledgerDelay):
		}
	}
	if err != nil {
		logging.Log.Errorf("SETTLEMENT: failed to close session %s: %v", sessionID, err)
		return nil, err
	}

	logging.Log.Infof("SETTLEMENT: closed session %s, pool %s, winner %s (%s)",
		sessionID, currency.Format(result.FinalPoolAmount), result.Winner.ID, result.Winner.Name)
	e.afterClose(ctx, result, organizers)
	return result, nil
}

// settle runs one settlement transaction. Every write to a general donation also
// rewrites its session, so a donation index that disagrees with the session's cached
// pool has usually not caught up yet. Unless trustLedger is set that fails with
// errLedgerBehind; once set, the ledger wins.
func (e *Engine) settle(ctx context.Context, sessionID string, now time.Time, trustLedger bool) (*Result, map[string]string, error) {
	var (
		result     *Result
		organizers map[string]string
	)

	err := e.transactor.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		result = nil
		organizers = make(map[string]string)

		session, err := tx.GetSession(ctx, sessionID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", sessionID, ErrSessionNotFound)
		}
		if err != nil {
			return err
		}
		if !session.Active {
			return fmt.Errorf("%s: %w", sessionID, ErrAlreadyClosed)
		}

		winner, err := Winner(session.Campaigns)
		if err != nil {
			return fmt.Errorf("%s: %w", sessionID, err)
		}

		// The ledger is authoritative; the cached PoolAmount may have drifted.
		ledger, err := tx.SessionDonations(ctx, sessionID)
		if err != nil {
			return err
		}
		poolTotal := 0.0
		for _, d := range ledger {
			poolTotal = currency.Add(poolTotal, d.Amount)
		}
		if poolTotal != session.PoolAmount && !trustLedger {
			return fmt.Errorf("%s: ledger %s, cached %s: %w", sessionID,
				currency.Format(poolTotal), currency.Format(session.PoolAmount), errLedgerBehind)
		}
		if poolTotal != session.PoolAmount {
			logging.Log.Warnf("SETTLEMENT: session %s cached pool %s differs from ledger %s",
				sessionID, currency.Format(session.PoolAmount), currency.Format(poolTotal))
		}

		allocations := Split(poolTotal, session.Campaigns, session.TotalVotes)

		read := make(map[string]*storage.Campaign, len(allocations))
		var completed []string
		reportCampaigns := make([]storage.ReportCampaign, 0, len(allocations))
		for _, a := range allocations {
			campaign, ok := read[a.Campaign.ID]
			if !ok {
				campaign, err = tx.GetCampaign(ctx, a.Campaign.ID)
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("%s: %w", a.Campaign.ID, ErrCampaignNotFound)
				}
				if err != nil {
					return err
				}
				read[a.Campaign.ID] = campaign
			}
			if campaigns.AddRaised(campaign, a.Amount, now) {
				completed = append(completed, campaign.ID)
			}
			tx.PutCampaign(campaign)
			organizers[campaign.ID] = campaign.OrganizerID

			category := a.Campaign.Category
			if category == "" {
				category = campaigns.DefaultCategory
			}
			reportCampaigns = append(reportCampaigns, storage.ReportCampaign{
				ID:       a.Campaign.ID,
				Name:     a.Campaign.Name,
				Votes:    a.Campaign.Votes,
				Category: category,
				Earned:   a.Amount,
			})
		}

		finalPool := poolTotal
		session.Active = false
		session.WinnerID = winner.ID
		session.FinalPoolAmount = &finalPool
		session.ClosedAt = &now
		tx.PutSession(session)

		report := &storage.WeeklyReport{
			ID:          session.ID,
			SessionID:   session.ID,
			WinnerID:    winner.ID,
			WinnerName:  winner.Name,
			TotalAmount: poolTotal,
			TotalVotes:  session.TotalVotes,
			StartDate:   session.StartDate,
			EndDate:     session.EndDate,
			ClosedAt:    now,
			Campaigns:   reportCampaigns,
		}
		tx.CreateReport(report)

		result = &Result{
			Winner:               winner,
			FinalPoolAmount:      poolTotal,
			Allocations:          allocations,
			Report:               report,
			CompletedCampaignIDs: completed,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, organizers, nil
}

// afterClose runs the side effects of a committed settlement. None of them can fail it.
func (e *Engine) afterClose(ctx context.Context, result *Result, organizers map[string]string) {
	earned := 0.0
	for _, a := range result.Allocations {
		if a.Campaign.ID == result.Winner.ID {
			earned = a.Amount
			break
		}
	}
	notify.Send(ctx, e.notifier, organizers[result.Winner.ID], notify.TypeCampaignWin,
		fmt.Sprintf("Your campaign %q won this week's vote and received %s!", result.Winner.Name, currency.Format(earned)))

	for _, id := range result.CompletedCampaignIDs {
		name := id
		for _, a := range result.Allocations {
			if a.Campaign.ID == id {
				name = a.Campaign.Name
				break
			}
		}
		notify.Send(ctx, e.notifier, organizers[id], notify.TypeCampaignCompleted, campaigns.CompletionMessage(name))
	}

	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, result.Report); err != nil {
			logging.Log.Warnf("SETTLEMENT: failed to archive report %s: %v", result.Report.ID, err)
		}
	}
}

// CloseActive settles the oldest active session whose week ended before now. A week
// that is still running is left open; with no ended week it returns ErrNoActiveSession.
func (e *Engine) CloseActive(ctx context.Context, now time.Time) (*Result, error) {
	session, err := voting.OldestEndedSession(ctx, e.sessions, now)
	if err != nil {
		return nil, err
	}
	return e.CloseSession(ctx, session.ID, now)
}

func (e *Engine) GetReport(ctx context.Context, id string) (*storage.WeeklyReport, error) {
	report, err := e.reports.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrReportNotFound)
	}
	return report, err
}

// ListReports returns reports newest first.
func (e *Engine) ListReports(ctx context.Context, limit int) ([]*storage.WeeklyReport, error) {
	return e.reports.ListRecent(ctx, limit)
}
