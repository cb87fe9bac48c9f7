package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/currency"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrInvalidCampaign   = errors.New("invalid campaign")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrInvalidTransition = errors.New("campaign status does not allow this change")
	ErrInvalidStatus     = errors.New("unknown campaign status")
)

const (
	DefaultCategory = "General"
	idAlphabet      = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength        = 12
)

// AddRaised applies delta to the campaign's raised amount, never going below zero.
// A positive delta that reaches the goal completes the campaign; the return value reports
// whether this call did so. Completion is never undone.
func AddRaised(c *storage.Campaign, delta float64, now time.Time) bool {
	raised := currency.Add(c.Raised, delta)
	if raised < 0 {
		raised = 0
	}
	c.Raised = raised
	c.UpdatedAt = now.UTC()

	if delta > 0 && c.Raised >= c.Goal && c.Status != storage.StatusCompleted {
		completedAt := now.UTC()
		c.Status = storage.StatusCompleted
		c.CompletedAt = &completedAt
		return true
	}
	return false
}

func CompletionMessage(name string) string {
	return fmt.Sprintf("Goal reached! Your campaign %q has reached its goal!", name)
}

func ParseStatus(s string) (storage.CampaignStatus, error) {
	switch status := storage.CampaignStatus(s); status {
	case storage.StatusPending, storage.StatusApproved, storage.StatusRejected, storage.StatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
}

type CreateInput struct {
	Name        string
	Description string
	Category    string
	OrganizerID string
	Goal        float64
}

type Service struct {
	storage  storage.CampaignStorage
	notifier notify.Notifier
	clock    func() time.Time
}

func NewService(s storage.CampaignStorage, notifier notify.Notifier, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{storage: s, notifier: notifier, clock: clock}
}

// Create stores a new campaign waiting for admin review.
func (s *Service) Create(ctx context.Context, in CreateInput) (*storage.Campaign, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCampaign)
	}
	if in.OrganizerID == "" {
		return nil, fmt.Errorf("%w: organizer is required", ErrInvalidCampaign)
	}
	if !currency.Valid(in.Goal) {
		return nil, fmt.Errorf("%w: goal must be positive", ErrInvalidCampaign)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	now := s.clock().UTC()
	for {
		id, err := gonanoid.Generate(idAlphabet, idLength)
		if err != nil {
			return nil, err
		}
		campaign := &storage.Campaign{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Category:    category,
			OrganizerID: in.OrganizerID,
			Goal:        currency.Round(in.Goal),
			Raised:      0,
			Status:      storage.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = s.storage.Create(ctx, campaign)
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			logging.Log.Warnf("CAMPAIGN: id collision on %s, generating another", id)
			continue
		}
		if err != nil {
			logging.Log.Errorf("CAMPAIGN: failed to create %q: %v", name, err)
			return nil, err
		}
		logging.Log.Infof("CAMPAIGN: created %s (%q) for organizer %s", id, name, in.OrganizerID)
		return campaign, nil
	}
}

func (s *Service) Get(ctx context.Context, id string) (*storage.Campaign, error) {
	c, err := s.storage.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrCampaignNotFound)
	}
	return c, err
}

func (s *Service) ListByStatus(ctx context.Context, status storage.CampaignStatus) ([]*storage.Campaign, error) {
	return s.storage.ListByStatus(ctx, status)
}

func (s *Service) ListByOrganizer(ctx context.Context, organizerID string) ([]*storage.Campaign, error) {
	return s.storage.ListByOrganizer(ctx, organizerID)
}

func (s *Service) OrganizerTotalRaised(ctx context.Context, organizerID string) (float64, error) {
	list, err := s.storage.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, c := range list {
		total = currency.Add(total, c.Raised)
	}
	return total, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*storage.Campaign, error) {
	c, err := s.review(ctx, id, storage.StatusApproved)
	if err != nil {
		return nil, err
	}
	notify.Send(ctx, s.notifier, c.OrganizerID, notify.TypeCampaignApproved,
		fmt.Sprintf("Your campaign %q was approved!", c.Name))
	return c, nil
}

func (s *Service) Reject(ctx context.Context, id string) (*storage.Campaign, error) {
	c, err := s.review(ctx, id, storage.StatusRejected)
	if err != nil {
		return nil, err
	}
	notify.Send(ctx, s.notifier, c.OrganizerID, notify.TypeCampaignRejected,
		fmt.Sprintf("Your campaign %q was rejected.", c.Name))
	return c, nil
}

// review moves a pending campaign to status. A concurrent change to the campaign makes
// Update fail with storage.ErrConflict and the review is retried against fresh data.
func (s *Service) review(ctx context.Context, id string, status storage.CampaignStatus) (*storage.Campaign, error) {
	for {
		c, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if c.Status != storage.StatusPending {
			return nil, fmt.Errorf("%s is %s: %w", id, c.Status, ErrInvalidTransition)
		}
		c.Status = status
		c.UpdatedAt = s.clock().UTC()

		err = s.storage.Update(ctx, c)
		if errors.Is(err, storage.ErrConflict) {
			logging.Log.Debugf("CAMPAIGN: %s changed during review, retrying", id)
			continue
		}
		if err != nil {
			logging.Log.Errorf("CAMPAIGN: failed to set %s to %s: %v", id, status, err)
			return nil, err
		}
		logging.Log.Infof("CAMPAIGN: %s is now %s", id, status)
		return c, nil
	}
}
