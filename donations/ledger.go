package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/currency"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/google/uuid"
)

var (
	ErrInvalidAmount    = errors.New("donation amount must be a positive number")
	ErrMissingUser      = errors.New("user id is required")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrDonationNotFound = errors.New("donation not found")
	// ErrSessionClosed rejects edits of a pool donation whose session was already settled.
	ErrSessionClosed = errors.New("the donation's voting session is closed")
)

const DefaultSource = "manual"

type RecordInput struct {
	UserID     string
	CampaignID string
	Amount     float64
	Source     string
	// Timestamp of the purchase; zero means now.
	Timestamp time.Time
}

// Ledger records donations and keeps campaign totals and session pools in step with them.
type Ledger struct {
	donations  storage.DonationStorage
	sessions   storage.SessionStorage
	transactor storage.Transactor
	notifier   notify.Notifier
	clock      func() time.Time
}

func NewLedger(donations storage.DonationStorage, sessions storage.SessionStorage, transactor storage.Transactor, notifier notify.Notifier, clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{
		donations:  donations,
		sessions:   sessions,
		transactor: transactor,
		notifier:   notifier,
		clock:      clock,
	}
}

// completion is a campaign that reached its goal inside a committed transaction.
type completion struct {
	organizerID string
	name        string
}

func (l *Ledger) notifyCompleted(ctx context.Context, completed []completion) {
	for _, c := range completed {
		notify.Send(ctx, l.notifier, c.organizerID, notify.TypeCampaignCompleted, campaigns.CompletionMessage(c.name))
	}
}

// RecordDonation stores a donation and credits its campaign, or the active session's pool
// for general donations, in one transaction.
func (l *Ledger) RecordDonation(ctx context.Context, in RecordInput) (string, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return "", ErrMissingUser
	}
	if !currency.Valid(in.Amount) {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, in.Amount)
	}
	amount := currency.Round(in.Amount)
	campaignID := strings.TrimSpace(in.CampaignID)
	if campaignID == "" {
		campaignID = storage.GeneralCampaignID
	}
	source := in.Source
	if source == "" {
		source = DefaultSource
	}
	now := l.clock().UTC()
	timestamp := in.Timestamp.UTC()
	if in.Timestamp.IsZero() {
		timestamp = now
	}

	// Resolved before the transaction: finding the active session needs an index query.
	// The session document itself is re-read and checked inside the transaction.
	var activeID string
	if campaignID == storage.GeneralCampaignID {
		active, err := voting.NewestActiveSession(ctx, l.sessions)
		switch {
		case errors.Is(err, voting.ErrNoActiveSession):
			logging.Log.Warnf("LEDGER: no active session, general donation of %s by %s stays unattributed", currency.Format(amount), in.UserID)
		case err != nil:
			return "", err
		default:
			activeID = active.ID
		}
	}

	id := uuid.NewString()
	var completed []completion
	err := l.transactor.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		completed = nil
		donation := &storage.Donation{
			ID:         id,
			UserID:     in.UserID,
			Amount:     amount,
			CampaignID: campaignID,
			Timestamp:  timestamp,
			Source:     source,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if campaignID == storage.GeneralCampaignID {
			if activeID != "" {
				session, err := tx.GetSession(ctx, activeID)
				if err != nil && !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				if session != nil && session.Active {
					session.PoolAmount = currency.Add(session.PoolAmount, amount)
					donation.VotingSessionID = session.ID
					tx.PutSession(session)
				} else {
					logging.Log.Warnf("LEDGER: session %s closed before donation %s committed, leaving it unattributed", activeID, id)
				}
			}
		} else {
			campaign, err := tx.GetCampaign(ctx, campaignID)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%s: %w", campaignID, ErrCampaignNotFound)
			}
			if err != nil {
				return err
			}
			if campaigns.AddRaised(campaign, amount, now) {
				completed = append(completed, completion{campaign.OrganizerID, campaign.Name})
			}
			tx.PutCampaign(campaign)
		}

		tx.PutDonation(donation)
		return nil
	})
	if err != nil {
		logging.Log.Errorf("LEDGER: failed to record donation of %s by %s to %s: %v", currency.Format(amount), in.UserID, campaignID, err)
		return "", err
	}

	logging.Log.Infof("LEDGER: recorded donation %s of %s by %s to %s", id, currency.Format(amount), in.UserID, campaignID)
	l.notifyCompleted(ctx, completed)
	return id, nil
}

// ReverseDonation deletes a donation and takes its amount back from the campaign or the
// session it was originally credited to.
func (l *Ledger) ReverseDonation(ctx context.Context, id string) error {
	now := l.clock().UTC()
	err := l.transactor.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		donation, err := l.loadDonation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := applyDelta(ctx, tx, donation, -donation.Amount, now); err != nil {
			return err
		}
		tx.DeleteDonation(donation)
		return nil
	})
	if err != nil {
		logging.Log.Errorf("LEDGER: failed to reverse donation %s: %v", id, err)
		return err
	}
	logging.Log.Infof("LEDGER: reversed donation %s", id)
	return nil
}

// AdjustDonation changes a donation's amount and applies only the difference to the
// aggregate it feeds.
func (l *Ledger) AdjustDonation(ctx context.Context, id string, newAmount float64) (*storage.Donation, error) {
	if !currency.Valid(newAmount) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, newAmount)
	}
	amount := currency.Round(newAmount)
	now := l.clock().UTC()

	var (
		result    *storage.Donation
		completed []completion
	)
	err := l.transactor.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		completed = nil
		donation, err := l.loadDonation(ctx, tx, id)
		if err != nil {
			return err
		}
		delta := currency.Sub(amount, donation.Amount)
		if delta != 0 {
			campaign, err := applyDeltaTracked(ctx, tx, donation, delta, now)
			if err != nil {
				return err
			}
			if campaign != nil {
				completed = append(completed, *campaign)
			}
		}
		donation.Amount = amount
		donation.UpdatedAt = now
		tx.PutDonation(donation)
		result = donation
		return nil
	})
	if err != nil {
		logging.Log.Errorf("LEDGER: failed to adjust donation %s: %v", id, err)
		return nil, err
	}

	logging.Log.Infof("LEDGER: adjusted donation %s to %s", id, currency.Format(amount))
	l.notifyCompleted(ctx, completed)
	return result, nil
}

func (l *Ledger) loadDonation(ctx context.Context, tx storage.Tx, id string) (*storage.Donation, error) {
	donation, err := tx.GetDonation(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrDonationNotFound)
	}
	return donation, err
}

func applyDelta(ctx context.Context, tx storage.Tx, donation *storage.Donation, delta float64, now time.Time) error {
	_, err := applyDeltaTracked(ctx, tx, donation, delta, now)
	return err
}

// applyDeltaTracked moves delta into the aggregate recorded on the donation itself and
// reports a campaign that completed because of it.
func applyDeltaTracked(ctx context.Context, tx storage.Tx, donation *storage.Donation, delta float64, now time.Time) (*completion, error) {
	if donation.IsGeneral() {
		if donation.VotingSessionID == "" {
			// Recorded while no session was active: there is no pool to correct.
			return nil, nil
		}
		session, err := tx.GetSession(ctx, donation.VotingSessionID)
		if errors.Is(err, storage.ErrNotFound) {
			logging.Log.Warnf("LEDGER: session %s of donation %s no longer exists", donation.VotingSessionID, donation.ID)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !session.Active {
			return nil, fmt.Errorf("%s: %w", donation.VotingSessionID, ErrSessionClosed)
		}
		session.PoolAmount = currency.Add(session.PoolAmount, delta)
		tx.PutSession(session)
		return nil, nil
	}

	campaign, err := tx.GetCampaign(ctx, donation.CampaignID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", donation.CampaignID, ErrCampaignNotFound)
	}
	if err != nil {
		return nil, err
	}
	completed := campaigns.AddRaised(campaign, delta, now)
	tx.PutCampaign(campaign)
	if completed {
		return &completion{campaign.OrganizerID, campaign.Name}, nil
	}
	return nil, nil
}

// ListUserDonations returns the user's donations, newest first.
func (l *Ledger) ListUserDonations(ctx context.Context, userID string) ([]*storage.Donation, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	return l.donations.ListByUser(ctx, userID)
}

func (l *Ledger) GetDonation(ctx context.Context, id string) (*storage.Donation, error) {
	d, err := l.donations.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrDonationNotFound)
	}
	return d, err
}

// UserDirectTotal sums what the user gave straight to campaigns, outside the pool.
func (l *Ledger) UserDirectTotal(ctx context.Context, userID string) (float64, error) {
	list, err := l.ListUserDonations(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, d := range list {
		if !d.IsGeneral() {
			total = currency.Add(total, d.Amount)
		}
	}
	return total, nil
}
