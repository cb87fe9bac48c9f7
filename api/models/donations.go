package models

import (
	"github.com/ITCS-6112-Dilio/dilio/donations"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"time"
)

type RecordDonationRequest struct {
	UserID string `json:"userId"`
	// CampaignID is a campaign id, or "general" (or empty) for the weekly voting pool.
	CampaignID string     `json:"campaignId"`
	Amount     float64    `json:"amount"`
	Source     string     `json:"source"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

type RecordDonationResponse struct {
	ID string `json:"id"`
}

type AdjustDonationRequest struct {
	Amount float64 `json:"amount"`
}

type DonationResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CampaignID      string    `json:"campaignId"`
	Amount          float64   `json:"amount"`
	VotingSessionID string    `json:"votingSessionId,omitempty"`
	Source          string    `json:"source"`
	Timestamp       time.Time `json:"timestamp"`
}

type UserDonationsResponse struct {
	UserID    string             `json:"userId"`
	Donations []DonationResponse `json:"donations"`
	Stats     donations.Stats    `json:"stats"`
}

func TransformDonation(d *storage.Donation) DonationResponse {
	return DonationResponse{
		ID:              d.ID,
		UserID:          d.UserID,
		CampaignID:      d.CampaignID,
		Amount:          d.Amount,
		VotingSessionID: d.VotingSessionID,
		Source:          d.Source,
		Timestamp:       d.Timestamp,
	}
}
