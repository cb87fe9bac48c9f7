package storage

import "time"

type CampaignStatus string

const (
	StatusPending   CampaignStatus = "pending"
	StatusApproved  CampaignStatus = "approved"
	StatusRejected  CampaignStatus = "rejected"
	StatusCompleted CampaignStatus = "completed"
)

// GeneralCampaignID marks a donation that feeds the weekly voting pool instead of a campaign.
const GeneralCampaignID = "general"

const (
	kindSession = "session"
	kindReport  = "report"
)

type Campaign struct {
	ID          string         `dynamodbav:"PK" json:"id"`
	Name        string         `dynamodbav:"Name" json:"name"`
	Description string         `dynamodbav:"Description" json:"description"`
	Category    string         `dynamodbav:"Category" json:"category"`
	OrganizerID string         `dynamodbav:"OrganizerID" json:"organizerId"`
	Goal        float64        `dynamodbav:"Goal" json:"goal"`
	Raised      float64        `dynamodbav:"Raised" json:"raised"`
	Status      CampaignStatus `dynamodbav:"Status" json:"status"`
	CreatedAt   time.Time      `dynamodbav:"CreatedAt" json:"createdAt"`
	UpdatedAt   time.Time      `dynamodbav:"UpdatedAt" json:"updatedAt"`
	CompletedAt *time.Time     `dynamodbav:"CompletedAt,omitempty" json:"completedAt,omitempty"`
	Version     int64          `dynamodbav:"Version" json:"-"`
}

type Donation struct {
	ID         string  `dynamodbav:"PK" json:"id"`
	UserID     string  `dynamodbav:"UserID" json:"userId"`
	Amount     float64 `dynamodbav:"Amount" json:"amount"`
	CampaignID string  `dynamodbav:"CampaignID" json:"campaignId"`
	// Only set for general donations; omitted otherwise so the session index stays sparse.
	VotingSessionID string    `dynamodbav:"VotingSessionID,omitempty" json:"votingSessionId,omitempty"`
	Timestamp       time.Time `dynamodbav:"Timestamp" json:"timestamp"`
	Source          string    `dynamodbav:"Source" json:"source"`
	CreatedAt       time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
	UpdatedAt       time.Time `dynamodbav:"UpdatedAt" json:"updatedAt"`
	Version         int64     `dynamodbav:"Version" json:"-"`
}

func (d *Donation) IsGeneral() bool {
	return d.CampaignID == GeneralCampaignID
}

type Vote struct {
	SessionID  string    `dynamodbav:"PK" json:"sessionId"`
	UserID     string    `dynamodbav:"SK" json:"userId"`
	CampaignID string    `dynamodbav:"CampaignID" json:"campaignId"`
	Timestamp  time.Time `dynamodbav:"Timestamp" json:"timestamp"`
	Version    int64     `dynamodbav:"Version" json:"-"`
}

// SessionCampaign is a snapshot of a campaign taken when the session was created.
// Later edits to the campaign do not change it.
type SessionCampaign struct {
	ID          string `dynamodbav:"ID" json:"id"`
	Name        string `dynamodbav:"Name" json:"name"`
	Description string `dynamodbav:"Description" json:"description"`
	Category    string `dynamodbav:"Category" json:"category"`
	Votes       int    `dynamodbav:"Votes" json:"votes"`
}

type VotingSession struct {
	ID              string            `dynamodbav:"PK" json:"id"`
	Kind            string            `dynamodbav:"Kind" json:"-"`
	StartDate       int64             `dynamodbav:"StartDate" json:"startDate"`
	EndDate         int64             `dynamodbav:"EndDate" json:"endDate"`
	Campaigns       []SessionCampaign `dynamodbav:"Campaigns" json:"campaigns"`
	TotalVotes      int               `dynamodbav:"TotalVotes" json:"totalVotes"`
	PoolAmount      float64           `dynamodbav:"PoolAmount" json:"poolAmount"`
	Active          bool              `dynamodbav:"Active" json:"active"`
	WinnerID        string            `dynamodbav:"WinnerID,omitempty" json:"winnerId,omitempty"`
	FinalPoolAmount *float64          `dynamodbav:"FinalPoolAmount,omitempty" json:"finalPoolAmount,omitempty"`
	ClosedAt        *time.Time        `dynamodbav:"ClosedAt,omitempty" json:"closedAt,omitempty"`
	CreatedAt       time.Time         `dynamodbav:"CreatedAt" json:"createdAt"`
	Version         int64             `dynamodbav:"Version" json:"-"`
}

// CampaignIndex returns the position of the campaign in the session snapshot, or -1.
func (s *VotingSession) CampaignIndex(campaignID string) int {
	for i := range s.Campaigns {
		if s.Campaigns[i].ID == campaignID {
			return i
		}
	}
	return -1
}

type ReportCampaign struct {
	ID       string  `dynamodbav:"ID" json:"id"`
	Name     string  `dynamodbav:"Name" json:"name"`
	Votes    int     `dynamodbav:"Votes" json:"votes"`
	Category string  `dynamodbav:"Category" json:"category"`
	Earned   float64 `dynamodbav:"Earned" json:"earned"`
}

type WeeklyReport struct {
	ID          string           `dynamodbav:"PK" json:"id"`
	Kind        string           `dynamodbav:"Kind" json:"-"`
	SessionID   string           `dynamodbav:"SessionID" json:"sessionId"`
	WinnerID    string           `dynamodbav:"WinnerID" json:"winnerId"`
	WinnerName  string           `dynamodbav:"WinnerName" json:"winnerName"`
	TotalAmount float64          `dynamodbav:"TotalAmount" json:"totalAmount"`
	TotalVotes  int              `dynamodbav:"TotalVotes" json:"totalVotes"`
	StartDate   int64            `dynamodbav:"StartDate" json:"startDate"`
	EndDate     int64            `dynamodbav:"EndDate" json:"endDate"`
	ClosedAt    time.Time        `dynamodbav:"ClosedAt" json:"closedAt"`
	Campaigns   []ReportCampaign `dynamodbav:"Campaigns" json:"campaigns"`
	Version     int64            `dynamodbav:"Version" json:"-"`
}

type Notification struct {
	UserID string `dynamodbav:"PK" json:"userId"`
	// SortKey orders a user's inbox by time: RFC3339Nano timestamp + "#" + ID
	SortKey   string    `dynamodbav:"SK" json:"-"`
	ID        string    `dynamodbav:"ID" json:"id"`
	Type      string    `dynamodbav:"Type" json:"type"`
	Message   string    `dynamodbav:"Message" json:"message"`
	Timestamp time.Time `dynamodbav:"Timestamp" json:"timestamp"`
	Read      bool      `dynamodbav:"Read" json:"read"`
}

func NotificationSortKey(ts time.Time, id string) string {
	return ts.UTC().Format(time.RFC3339Nano) + "#" + id
}
