package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
)

type Config struct {
	Location            *time.Location
	CampaignsPerSession int
	ExcludeRecentWeeks  int
}

type Service struct {
	sessions   storage.SessionStorage
	votes      storage.VoteStorage
	transactor storage.Transactor
	selector   *Selector
	config     Config
}

func NewService(sessions storage.SessionStorage, votes storage.VoteStorage, transactor storage.Transactor, selector *Selector, config Config) *Service {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.CampaignsPerSession <= 0 {
		config.CampaignsPerSession = DefaultCampaignsPerSession
	}
	if config.ExcludeRecentWeeks < 0 {
		config.ExcludeRecentWeeks = DefaultExcludeRecentWeeks
	}
	return &Service{
		sessions:   sessions,
		votes:      votes,
		transactor: transactor,
		selector:   selector,
		config:     config,
	}
}

func (s *Service) Location() *time.Location {
	return s.config.Location
}

// GetOrCreateCurrentSession returns the session of the week containing now, creating it
// with a fresh campaign selection on first access. A closed session for the week yields
// ErrNoActiveSession.
func (s *Service) GetOrCreateCurrentSession(ctx context.Context, now time.Time) (*storage.VotingSession, error) {
	weekID := WeekID(now, s.config.Location)

	session, err := s.sessions.Get(ctx, weekID)
	if err == nil {
		return activeOnly(session)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		logging.Log.Errorf("VOTING: failed to load session %s: %v", weekID, err)
		return nil, err
	}

	campaigns, err := s.selector.Select(ctx, s.config.CampaignsPerSession, s.config.ExcludeRecentWeeks)
	if err != nil {
		logging.Log.Errorf("VOTING: campaign selection failed for %s: %v", weekID, err)
		return nil, err
	}

	start, end := WeekRange(now, s.config.Location)
	session = &storage.VotingSession{
		ID:         weekID,
		StartDate:  start.UnixMilli(),
		EndDate:    end.UnixMilli(),
		Campaigns:  make([]storage.SessionCampaign, 0, len(campaigns)),
		TotalVotes: 0,
		PoolAmount: 0,
		Active:     true,
		CreatedAt:  now.UTC(),
	}
	for _, c := range campaigns {
		session.Campaigns = append(session.Campaigns, storage.SessionCampaign{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
		})
	}
	if len(session.Campaigns) == 0 {
		logging.Log.Warnf("VOTING: session %s created without campaigns", weekID)
	}

	err = s.sessions.Create(ctx, session)
	if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
		// Someone else created the week first; theirs is the canonical one.
		logging.Log.Debugf("VOTING: session %s was created concurrently, re-reading", weekID)
		existing, err := s.sessions.Get(ctx, weekID)
		if err != nil {
			return nil, err
		}
		return activeOnly(existing)
	}
	if err != nil {
		logging.Log.Errorf("VOTING: failed to create session %s: %v", weekID, err)
		return nil, err
	}

	logging.Log.Infof("VOTING: created session %s with %d campaigns", weekID, len(session.Campaigns))
	return session, nil
}

func activeOnly(session *storage.VotingSession) (*storage.VotingSession, error) {
	if !session.Active {
		return nil, fmt.Errorf("session %s: %w", session.ID, ErrNoActiveSession)
	}
	return session, nil
}

// SubmitOrChangeVote records the user's choice for the session. Voting for the same
// campaign again is a no-op; voting for another campaign moves the vote without
// changing the session total.
func (s *Service) SubmitOrChangeVote(ctx context.Context, userID, campaignID, sessionID string, now time.Time) (*storage.Vote, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	var result *storage.Vote
	err := s.transactor.RunTransaction(ctx, func(ctx context.Context, tx storage.Tx) error {
		session, err := tx.GetSession(ctx, sessionID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", sessionID, ErrSessionNotFound)
		}
		if err != nil {
			return err
		}
		if !session.Active {
			return fmt.Errorf("%s: %w", sessionID, ErrSessionClosed)
		}
		next := session.CampaignIndex(campaignID)
		if next < 0 {
			return fmt.Errorf("%s in %s: %w", campaignID, sessionID, ErrCampaignNotInSession)
		}

		existing, err := tx.GetVote(ctx, sessionID, userID)
		if err != nil {
			return err
		}

		switch {
		case existing != nil && existing.CampaignID == campaignID:
			result = existing
			return nil
		case existing != nil:
			if prev := session.CampaignIndex(existing.CampaignID); prev >= 0 && session.Campaigns[prev].Votes > 0 {
				session.Campaigns[prev].Votes--
			}
			session.Campaigns[next].Votes++
			existing.CampaignID = campaignID
			existing.Timestamp = now.UTC()
			result = existing
		default:
			session.Campaigns[next].Votes++
			session.TotalVotes++
			result = &storage.Vote{
				SessionID:  sessionID,
				UserID:     userID,
				CampaignID: campaignID,
				Timestamp:  now.UTC(),
			}
		}

		tx.PutSession(session)
		tx.PutVote(result)
		return nil
	})
	if err != nil {
		logging.Log.Warnf("VOTING: vote of %s in %s rejected: %v", userID, sessionID, err)
		return nil, err
	}

	logging.Log.Debugf("VOTING: user %s votes %s in %s", userID, campaignID, sessionID)
	return result, nil
}

// GetUserVote returns nil, nil when the user has not voted in the session.
func (s *Service) GetUserVote(ctx context.Context, userID, sessionID string) (*storage.Vote, error) {
	return s.votes.Get(ctx, sessionID, userID)
}

func (s *Service) HasUserVoted(ctx context.Context, userID, sessionID string) (bool, error) {
	vote, err := s.votes.Get(ctx, sessionID, userID)
	if err != nil {
		return false, err
	}
	return vote != nil, nil
}

// GetPastSessions returns closed sessions, newest first.
func (s *Service) GetPastSessions(ctx context.Context, limit int) ([]*storage.VotingSession, error) {
	return s.sessions.ListClosed(ctx, limit)
}

func (s *Service) GetSession(ctx context.Context, id string) (*storage.VotingSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return session, err
}

// ActiveSession returns the newest session still open for votes.
func (s *Service) ActiveSession(ctx context.Context) (*storage.VotingSession, error) {
	return NewestActiveSession(ctx, s.sessions)
}

// NewestActiveSession picks the session new general donations are credited to. More
// than one active session only happens while a finished week waits for its close.
func NewestActiveSession(ctx context.Context, sessions storage.SessionStorage) (*storage.VotingSession, error) {
	active, err := sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveSession
	}
	if len(active) > 1 {
		logging.Log.Warnf("VOTING: %d sessions are active, crediting %s", len(active), active[0].ID)
	}
	return active[0], nil
}

// OldestEndedSession picks the session due for settlement: the oldest active session
// whose week ended before now. The running week is never returned.
func OldestEndedSession(ctx context.Context, sessions storage.SessionStorage, now time.Time) (*storage.VotingSession, error) {
	active, err := sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	var due *storage.VotingSession
	for _, session := range active {
		if session.EndDate >= now.UnixMilli() {
			continue
		}
		if due == nil || session.StartDate < due.StartDate {
			due = session
		}
	}
	if due == nil {
		return nil, ErrNoActiveSession
	}
	return due, nil
}
