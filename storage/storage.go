package storage

import "context"

type CampaignStorage interface {
	Get(ctx context.Context, id string) (*Campaign, error)
	Create(ctx context.Context, campaign *Campaign) error
	// Update replaces the campaign if nobody changed it since it was read.
	Update(ctx context.Context, campaign *Campaign) error
	ListByStatus(ctx context.Context, status CampaignStatus) ([]*Campaign, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Campaign, error)
}

type DonationStorage interface {
	Get(ctx context.Context, id string) (*Donation, error)
	ListByUser(ctx context.Context, userID string) ([]*Donation, error)
	ListBySession(ctx context.Context, sessionID string) ([]*Donation, error)
}

type VoteStorage interface {
	// Get returns nil, nil when the user has not voted in the session.
	Get(ctx context.Context, sessionID, userID string) (*Vote, error)
	ListBySession(ctx context.Context, sessionID string) ([]*Vote, error)
}

type SessionStorage interface {
	Get(ctx context.Context, id string) (*VotingSession, error)
	Create(ctx context.Context, session *VotingSession) error
	// ListRecent returns sessions by StartDate, newest first. limit <= 0 means no limit.
	ListRecent(ctx context.Context, limit int) ([]*VotingSession, error)
	ListActive(ctx context.Context) ([]*VotingSession, error)
	ListClosed(ctx context.Context, limit int) ([]*VotingSession, error)
}

type ReportStorage interface {
	Get(ctx context.Context, id string) (*WeeklyReport, error)
	ListRecent(ctx context.Context, limit int) ([]*WeeklyReport, error)
}

type NotificationStorage interface {
	Create(ctx context.Context, notification *Notification) error
	// ListByUser returns the user's inbox, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// Transactor runs fn as one atomic unit. Reads made through tx are validated at commit
// time; if any of them changed, fn is run again from scratch. fn must not have side
// effects outside tx since it may run more than once.
type Transactor interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx stages writes until commit. Writes to an existing document must be preceded by a
// read of that document in the same transaction; unread documents are written as creates.
type Tx interface {
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	GetSession(ctx context.Context, id string) (*VotingSession, error)
	GetDonation(ctx context.Context, id string) (*Donation, error)
	// GetVote returns nil, nil when no vote exists.
	GetVote(ctx context.Context, sessionID, userID string) (*Vote, error)
	// SessionDonations lists the ledger entries attributed to a session.
	SessionDonations(ctx context.Context, sessionID string) ([]*Donation, error)

	PutCampaign(campaign *Campaign)
	PutSession(session *VotingSession)
	PutDonation(donation *Donation)
	DeleteDonation(donation *Donation)
	PutVote(vote *Vote)
	CreateReport(report *WeeklyReport)
}
