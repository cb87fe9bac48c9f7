package models

import "github.com/ITCS-6112-Dilio/dilio/storage"

type CreateCampaignRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	OrganizerID string  `json:"organizerId"`
	Goal        float64 `json:"goal"`
}

type OrganizerCampaignsResponse struct {
	OrganizerID string              `json:"organizerId"`
	TotalRaised float64             `json:"totalRaised"`
	Campaigns   []*storage.Campaign `json:"campaigns"`
}
