package voting

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
)

const (
	DefaultCampaignsPerSession = 5
	DefaultExcludeRecentWeeks  = 3
)

// Selector picks the campaigns offered in a new weekly session, preferring campaigns
// that did not appear in the last few sessions.
type Selector struct {
	Campaigns storage.CampaignStorage
	Sessions  storage.SessionStorage
	// Rand drives the shuffle. nil uses the global source.
	Rand *rand.Rand
}

func NewSelector(campaigns storage.CampaignStorage, sessions storage.SessionStorage) *Selector {
	return &Selector{Campaigns: campaigns, Sessions: sessions}
}

// Select returns up to count approved campaigns in random order. Campaigns used by the
// excludeRecentWeeks most recent sessions are skipped unless that would leave fewer than
// count to choose from, in which case every approved campaign is a candidate.
func (s *Selector) Select(ctx context.Context, count, excludeRecentWeeks int) ([]*storage.Campaign, error) {
	if count <= 0 {
		return nil, nil
	}

	approved, err := s.Campaigns.ListByStatus(ctx, storage.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved campaigns: %w", err)
	}

	recent, err := s.recentlyUsed(ctx, excludeRecentWeeks)
	if err != nil {
		return nil, err
	}

	candidates := make([]*storage.Campaign, 0, len(approved))
	for _, c := range approved {
		if !recent[c.ID] {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) < count {
		logging.Log.Debugf("VOTING: only %d fresh campaigns, falling back to all %d approved", len(candidates), len(approved))
		candidates = approved
	}

	// Stable input order so a seeded source gives a reproducible shuffle.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	s.shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (s *Selector) recentlyUsed(ctx context.Context, weeks int) (map[string]bool, error) {
	used := make(map[string]bool)
	if weeks <= 0 {
		return used, nil
	}
	sessions, err := s.Sessions.ListRecent(ctx, weeks)
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	for _, session := range sessions {
		for _, c := range session.Campaigns {
			used[c.ID] = true
		}
	}
	return used, nil
}

func (s *Selector) shuffle(n int, swap func(i, j int)) {
	if s.Rand != nil {
		s.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
