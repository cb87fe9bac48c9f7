package controllers

import (
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/gin-gonic/gin"
	"net/http"
)

type CampaignsController struct {
	campaigns *campaigns.Service
}

func NewCampaignsController(s *campaigns.Service) *CampaignsController {
	return &CampaignsController{
		campaigns: s,
	}
}

func (c *CampaignsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/campaigns")

	group.POST("", c.create)
	group.GET("", c.list)
	group.GET("/:id", c.get)
}

// create godoc
// @Summary Submit a campaign
// @Description New campaigns wait in pending until an admin approves them
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign body models.CreateCampaignRequest true "Campaign"
// @Success 201 {object} storage.Campaign
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/campaigns [post]
func (c *CampaignsController) create(g *gin.Context) {
	var req models.CreateCampaignRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	campaign, err := c.campaigns.Create(g.Request.Context(), campaigns.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		OrganizerID: req.OrganizerID,
		Goal:        req.Goal,
	})
	if err != nil {
		respondError(g, "CAMPAIGN", err)
		return
	}
	g.JSON(http.StatusCreated, campaign)
}

// list godoc
// @Summary List campaigns
// @Description By status (default approved), or every campaign of an organizer with their total raised
// @Tags campaigns
// @Produce json
// @Param status query string false "pending, approved, rejected or completed"
// @Param organizer query string false "Organizer id"
// @Success 200 {array} storage.Campaign
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/campaigns [get]
func (c *CampaignsController) list(g *gin.Context) {
	ctx := g.Request.Context()

	if organizer := g.Query("organizer"); organizer != "" {
		list, err := c.campaigns.ListByOrganizer(ctx, organizer)
		if err != nil {
			respondError(g, "CAMPAIGN", err)
			return
		}
		total, err := c.campaigns.OrganizerTotalRaised(ctx, organizer)
		if err != nil {
			respondError(g, "CAMPAIGN", err)
			return
		}
		g.JSON(http.StatusOK, &models.OrganizerCampaignsResponse{OrganizerID: organizer, TotalRaised: total, Campaigns: list})
		return
	}

	status := storage.StatusApproved
	if raw := g.Query("status"); raw != "" {
		parsed, err := campaigns.ParseStatus(raw)
		if err != nil {
			respondError(g, "CAMPAIGN", err)
			return
		}
		status = parsed
	}

	list, err := c.campaigns.ListByStatus(ctx, status)
	if err != nil {
		respondError(g, "CAMPAIGN", err)
		return
	}
	g.JSON(http.StatusOK, list)
}

// get godoc
// @Summary Get a campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} storage.Campaign
// @Failure 404 {object} models.ErrorResponse
// @Router /api/campaigns/{id} [get]
func (c *CampaignsController) get(g *gin.Context) {
	campaign, err := c.campaigns.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "CAMPAIGN", err)
		return
	}
	g.JSON(http.StatusOK, campaign)
}
