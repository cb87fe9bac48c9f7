package models

import (
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
)

type AllocationResponse struct {
	CampaignID string  `json:"campaignId"`
	Name       string  `json:"name"`
	Votes      int     `json:"votes"`
	Amount     float64 `json:"amount"`
}

type CloseSessionResponse struct {
	SessionID            string                `json:"sessionId"`
	WinnerID             string                `json:"winnerId"`
	FinalPoolAmount      float64               `json:"finalPoolAmount"`
	Allocations          []AllocationResponse  `json:"allocations"`
	CompletedCampaignIDs []string              `json:"completedCampaignIds"`
	Report               *storage.WeeklyReport `json:"report"`
}

func TransformCloseResult(r *settlement.Result) CloseSessionResponse {
	resp := CloseSessionResponse{
		SessionID:            r.Report.SessionID,
		WinnerID:             r.Winner.ID,
		FinalPoolAmount:      r.FinalPoolAmount,
		Allocations:          make([]AllocationResponse, 0, len(r.Allocations)),
		CompletedCampaignIDs: r.CompletedCampaignIDs,
		Report:               r.Report,
	}
	for _, a := range r.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			CampaignID: a.Campaign.ID,
			Name:       a.Campaign.Name,
			Votes:      a.Campaign.Votes,
			Amount:     a.Amount,
		})
	}
	return resp
}
