package models

import (
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"time"
)

type SubmitVoteRequest struct {
	UserID     string `json:"userId"`
	CampaignID string `json:"campaignId"`
	SessionID  string `json:"sessionId"`
}

type VoteResponse struct {
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	CampaignID string    `json:"campaignId"`
	Timestamp  time.Time `json:"timestamp"`
}

type SessionCampaignResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Votes       int    `json:"votes"`
}

type SessionResponse struct {
	ID              string                    `json:"id"`
	StartDate       time.Time                 `json:"startDate"`
	EndDate         time.Time                 `json:"endDate"`
	Active          bool                      `json:"active"`
	PoolAmount      float64                   `json:"poolAmount"`
	TotalVotes      int                       `json:"totalVotes"`
	Campaigns       []SessionCampaignResponse `json:"campaigns"`
	WinnerID        string                    `json:"winnerId,omitempty"`
	FinalPoolAmount *float64                  `json:"finalPoolAmount,omitempty"`
	ClosedAt        *time.Time                `json:"closedAt,omitempty"`
	// UserVote is only filled when the request names a user.
	UserVote *VoteResponse `json:"userVote,omitempty"`
}

type UserVoteResponse struct {
	Voted bool          `json:"voted"`
	Vote  *VoteResponse `json:"vote,omitempty"`
}

func TransformVote(v *storage.Vote) *VoteResponse {
	if v == nil {
		return nil
	}
	return &VoteResponse{
		SessionID:  v.SessionID,
		UserID:     v.UserID,
		CampaignID: v.CampaignID,
		Timestamp:  v.Timestamp,
	}
}

func TransformSession(s *storage.VotingSession, vote *storage.Vote) SessionResponse {
	r := SessionResponse{
		ID:              s.ID,
		StartDate:       time.UnixMilli(s.StartDate).UTC(),
		EndDate:         time.UnixMilli(s.EndDate).UTC(),
		Active:          s.Active,
		PoolAmount:      s.PoolAmount,
		TotalVotes:      s.TotalVotes,
		Campaigns:       make([]SessionCampaignResponse, 0, len(s.Campaigns)),
		WinnerID:        s.WinnerID,
		FinalPoolAmount: s.FinalPoolAmount,
		ClosedAt:        s.ClosedAt,
		UserVote:        TransformVote(vote),
	}
	for _, c := range s.Campaigns {
		r.Campaigns = append(r.Campaigns, SessionCampaignResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
			Votes:       c.Votes,
		})
	}
	return r
}
