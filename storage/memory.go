package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps every table in process. Transactions are serialized under one lock
// and their staged writes are applied all at once, which gives the same all-or-nothing
// behaviour as the DynamoDB transactor. Used by tests and by APP_ENV=memory runs.
type MemoryStore struct {
	mu            sync.Mutex
	campaigns     map[string]*Campaign
	donations     map[string]*Donation
	votes         map[voteKey]*Vote
	sessions      map[string]*VotingSession
	reports       map[string]*WeeklyReport
	notifications map[string][]*Notification
}

type voteKey struct {
	sessionID string
	userID    string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns:     make(map[string]*Campaign),
		donations:     make(map[string]*Donation),
		votes:         make(map[voteKey]*Vote),
		sessions:      make(map[string]*VotingSession),
		reports:       make(map[string]*WeeklyReport),
		notifications: make(map[string][]*Notification),
	}
}

func (s *MemoryStore) Campaigns() CampaignStorage         { return memCampaigns{s} }
func (s *MemoryStore) Donations() DonationStorage         { return memDonations{s} }
func (s *MemoryStore) Votes() VoteStorage                 { return memVotes{s} }
func (s *MemoryStore) Sessions() SessionStorage           { return memSessions{s} }
func (s *MemoryStore) Reports() ReportStorage             { return memReports{s} }
func (s *MemoryStore) Notifications() NotificationStorage { return memNotifications{s} }

func copyCampaign(c *Campaign) *Campaign {
	cp := *c
	return &cp
}

func copyDonation(d *Donation) *Donation {
	cp := *d
	return &cp
}

func copyVote(v *Vote) *Vote {
	cp := *v
	return &cp
}

func copySession(s *VotingSession) *VotingSession {
	cp := *s
	cp.Campaigns = append([]SessionCampaign(nil), s.Campaigns...)
	if s.FinalPoolAmount != nil {
		amount := *s.FinalPoolAmount
		cp.FinalPoolAmount = &amount
	}
	return &cp
}

func copyReport(r *WeeklyReport) *WeeklyReport {
	cp := *r
	cp.Campaigns = append([]ReportCampaign(nil), r.Campaigns...)
	return &cp
}

// campaigns

type memCampaigns struct{ s *MemoryStore }

func (m memCampaigns) Get(_ context.Context, id string) (*Campaign, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.campaigns[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCampaign(c), nil
}

func (m memCampaigns) Create(_ context.Context, c *Campaign) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.campaigns[c.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	c.Version = 1
	m.s.campaigns[c.ID] = copyCampaign(c)
	return nil
}

func (m memCampaigns) Update(_ context.Context, c *Campaign) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	current, ok := m.s.campaigns[c.ID]
	if !ok || current.Version != c.Version {
		return ErrConflict
	}
	c.Version++
	m.s.campaigns[c.ID] = copyCampaign(c)
	return nil
}

func (m memCampaigns) ListByStatus(_ context.Context, status CampaignStatus) ([]*Campaign, error) {
	return m.filter(func(c *Campaign) bool { return c.Status == status }), nil
}

func (m memCampaigns) ListByOrganizer(_ context.Context, organizerID string) ([]*Campaign, error) {
	return m.filter(func(c *Campaign) bool { return c.OrganizerID == organizerID }), nil
}

func (m memCampaigns) filter(keep func(*Campaign) bool) []*Campaign {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*Campaign
	for _, c := range m.s.campaigns {
		if keep(c) {
			out = append(out, copyCampaign(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// donations

type memDonations struct{ s *MemoryStore }

func (m memDonations) Get(_ context.Context, id string) (*Donation, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.donations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDonation(d), nil
}

func (m memDonations) ListByUser(_ context.Context, userID string) ([]*Donation, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*Donation
	for _, d := range m.s.donations {
		if d.UserID == userID {
			out = append(out, copyDonation(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m memDonations) ListBySession(_ context.Context, sessionID string) ([]*Donation, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.sessionDonations(sessionID, nil), nil
}

func (s *MemoryStore) sessionDonations(sessionID string, overlay map[string]*Donation) []*Donation {
	var out []*Donation
	for id, d := range s.donations {
		if staged, ok := overlay[id]; ok {
			d = staged
		}
		if d != nil && d.VotingSessionID == sessionID {
			out = append(out, copyDonation(d))
		}
	}
	for id, d := range overlay {
		if _, existed := s.donations[id]; !existed && d != nil && d.VotingSessionID == sessionID {
			out = append(out, copyDonation(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// votes

type memVotes struct{ s *MemoryStore }

func (m memVotes) Get(_ context.Context, sessionID, userID string) (*Vote, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	v, ok := m.s.votes[voteKey{sessionID, userID}]
	if !ok {
		return nil, nil
	}
	return copyVote(v), nil
}

func (m memVotes) ListBySession(_ context.Context, sessionID string) ([]*Vote, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*Vote
	for k, v := range m.s.votes {
		if k.sessionID == sessionID {
			out = append(out, copyVote(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// sessions

type memSessions struct{ s *MemoryStore }

func (m memSessions) Get(_ context.Context, id string) (*VotingSession, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(session), nil
}

func (m memSessions) Create(_ context.Context, session *VotingSession) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.sessions[session.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	session.Kind = kindSession
	session.Version = 1
	m.s.sessions[session.ID] = copySession(session)
	return nil
}

func (m memSessions) ListRecent(_ context.Context, limit int) ([]*VotingSession, error) {
	return m.list(func(*VotingSession) bool { return true }, limit), nil
}

func (m memSessions) ListActive(_ context.Context) ([]*VotingSession, error) {
	return m.list(func(s *VotingSession) bool { return s.Active }, 0), nil
}

func (m memSessions) ListClosed(_ context.Context, limit int) ([]*VotingSession, error) {
	return m.list(func(s *VotingSession) bool { return !s.Active }, limit), nil
}

func (m memSessions) list(keep func(*VotingSession) bool, limit int) []*VotingSession {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*VotingSession
	for _, session := range m.s.sessions {
		if keep(session) {
			out = append(out, copySession(session))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// reports

type memReports struct{ s *MemoryStore }

func (m memReports) Get(_ context.Context, id string) (*WeeklyReport, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyReport(r), nil
}

func (m memReports) ListRecent(_ context.Context, limit int) ([]*WeeklyReport, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*WeeklyReport, 0, len(m.s.reports))
	for _, r := range m.s.reports {
		out = append(out, copyReport(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// notifications

type memNotifications struct{ s *MemoryStore }

func (m memNotifications) Create(_ context.Context, n *Notification) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if n.SortKey == "" {
		n.SortKey = NotificationSortKey(n.Timestamp, n.ID)
	}
	for _, existing := range m.s.notifications[n.UserID] {
		if existing.SortKey == n.SortKey {
			return ErrItemWithIDAlreadyExists
		}
	}
	cp := *n
	m.s.notifications[n.UserID] = append(m.s.notifications[n.UserID], &cp)
	return nil
}

func (m memNotifications) ListByUser(_ context.Context, userID string) ([]*Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	inbox := m.s.notifications[userID]
	out := make([]*Notification, 0, len(inbox))
	for _, n := range inbox {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey > out[j].SortKey })
	return out, nil
}

func (m memNotifications) MarkRead(_ context.Context, userID, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, n := range m.s.notifications[userID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotFound
}

// transactions

func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		s:         s,
		read:      make(map[string]bool),
		campaigns: make(map[string]*Campaign),
		sessions:  make(map[string]*VotingSession),
		donations: make(map[string]*Donation),
		votes:     make(map[voteKey]*Vote),
		reports:   make(map[string]*WeeklyReport),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if tx.err != nil {
		return tx.err
	}
	tx.apply()
	return nil
}

type memTx struct {
	s    *MemoryStore
	read map[string]bool

	campaigns map[string]*Campaign
	sessions  map[string]*VotingSession
	// A nil entry marks a staged delete.
	donations map[string]*Donation
	votes     map[voteKey]*Vote
	reports   map[string]*WeeklyReport
	err       error
}

func (tx *memTx) GetCampaign(_ context.Context, id string) (*Campaign, error) {
	tx.read["campaign/"+id] = true
	if c, ok := tx.campaigns[id]; ok {
		return copyCampaign(c), nil
	}
	c, ok := tx.s.campaigns[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCampaign(c), nil
}

func (tx *memTx) GetSession(_ context.Context, id string) (*VotingSession, error) {
	tx.read["session/"+id] = true
	if session, ok := tx.sessions[id]; ok {
		return copySession(session), nil
	}
	session, ok := tx.s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(session), nil
}

func (tx *memTx) GetDonation(_ context.Context, id string) (*Donation, error) {
	tx.read["donation/"+id] = true
	if d, ok := tx.donations[id]; ok {
		if d == nil {
			return nil, ErrNotFound
		}
		return copyDonation(d), nil
	}
	d, ok := tx.s.donations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDonation(d), nil
}

func (tx *memTx) GetVote(_ context.Context, sessionID, userID string) (*Vote, error) {
	k := voteKey{sessionID, userID}
	tx.read["vote/"+sessionID+"/"+userID] = true
	if v, ok := tx.votes[k]; ok {
		return copyVote(v), nil
	}
	v, ok := tx.s.votes[k]
	if !ok {
		return nil, nil
	}
	return copyVote(v), nil
}

func (tx *memTx) SessionDonations(_ context.Context, sessionID string) ([]*Donation, error) {
	return tx.s.sessionDonations(sessionID, tx.donations), nil
}

// mustHaveRead mirrors the DynamoDB transactor: overwriting a document that exists
// without reading it first fails the commit.
func (tx *memTx) mustHaveRead(key string, exists bool) {
	if exists && !tx.read[key] {
		tx.err = fmt.Errorf("%w: %s written without being read", ErrConflict, key)
	}
}

func (tx *memTx) PutCampaign(c *Campaign) {
	_, exists := tx.s.campaigns[c.ID]
	tx.mustHaveRead("campaign/"+c.ID, exists)
	tx.campaigns[c.ID] = copyCampaign(c)
}

func (tx *memTx) PutSession(session *VotingSession) {
	_, exists := tx.s.sessions[session.ID]
	tx.mustHaveRead("session/"+session.ID, exists)
	session.Kind = kindSession
	tx.sessions[session.ID] = copySession(session)
}

func (tx *memTx) PutDonation(d *Donation) {
	_, exists := tx.s.donations[d.ID]
	tx.mustHaveRead("donation/"+d.ID, exists)
	tx.donations[d.ID] = copyDonation(d)
}

func (tx *memTx) DeleteDonation(d *Donation) {
	_, exists := tx.s.donations[d.ID]
	tx.mustHaveRead("donation/"+d.ID, exists)
	tx.donations[d.ID] = nil
}

func (tx *memTx) PutVote(v *Vote) {
	_, exists := tx.s.votes[voteKey{v.SessionID, v.UserID}]
	tx.mustHaveRead("vote/"+v.SessionID+"/"+v.UserID, exists)
	tx.votes[voteKey{v.SessionID, v.UserID}] = copyVote(v)
}

func (tx *memTx) CreateReport(r *WeeklyReport) {
	if _, exists := tx.s.reports[r.ID]; exists {
		tx.err = fmt.Errorf("report %s: %w", r.ID, ErrItemWithIDAlreadyExists)
		return
	}
	r.Kind = kindReport
	r.Version = 1
	tx.reports[r.ID] = copyReport(r)
}

func (tx *memTx) apply() {
	s := tx.s
	for id, c := range tx.campaigns {
		c.Version++
		s.campaigns[id] = c
	}
	for id, session := range tx.sessions {
		session.Version++
		s.sessions[id] = session
	}
	for id, d := range tx.donations {
		if d == nil {
			delete(s.donations, id)
			continue
		}
		d.Version++
		s.donations[id] = d
	}
	for k, v := range tx.votes {
		v.Version++
		s.votes[k] = v
	}
	for id, r := range tx.reports {
		s.reports[id] = r
	}
}
