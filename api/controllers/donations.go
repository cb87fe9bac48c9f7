package controllers

import (
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/donations"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type DonationsController struct {
	ledger *donations.Ledger
	// loc decides calendar days for streaks.
	loc   *time.Location
	clock func() time.Time
}

func NewDonationsController(ledger *donations.Ledger, loc *time.Location) *DonationsController {
	if loc == nil {
		loc = time.UTC
	}
	return &DonationsController{
		ledger: ledger,
		loc:    loc,
		clock:  time.Now,
	}
}

func (c *DonationsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/donations")

	group.POST("", c.recordDonation)
	group.GET("/user/:userId", c.listUserDonations)
	group.GET("/:id", c.getDonation)
	group.PATCH("/:id", c.adjustDonation)
	group.DELETE("/:id", c.reverseDonation)
}

// recordDonation godoc
// @Summary Record a donation
// @Description Records a round-up donation. Use campaignId "general" to feed the weekly voting pool.
// @Tags donations
// @Accept json
// @Produce json
// @Param donation body models.RecordDonationRequest true "Donation"
// @Success 201 {object} models.RecordDonationResponse
// @Failure 400 {object} models.ErrorResponse "Invalid amount or user"
// @Failure 404 {object} models.ErrorResponse "Campaign not found"
// @Failure 503 {object} models.ErrorResponse "Concurrent update, retry"
// @Router /api/donations [post]
func (c *DonationsController) recordDonation(g *gin.Context) {
	var req models.RecordDonationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	in := donations.RecordInput{
		UserID:     req.UserID,
		CampaignID: req.CampaignID,
		Amount:     req.Amount,
		Source:     req.Source,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}

	id, err := c.ledger.RecordDonation(g.Request.Context(), in)
	if err != nil {
		respondError(g, "LEDGER", err)
		return
	}
	g.JSON(http.StatusCreated, &models.RecordDonationResponse{ID: id})
}

// listUserDonations godoc
// @Summary List a user's donations
// @Description Donations newest first, with totals, points and streak
// @Tags donations
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} models.UserDonationsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/donations/user/{userId} [get]
func (c *DonationsController) listUserDonations(g *gin.Context) {
	userID := g.Param("userId")
	list, err := c.ledger.ListUserDonations(g.Request.Context(), userID)
	if err != nil {
		respondError(g, "LEDGER", err)
		return
	}

	response := models.UserDonationsResponse{
		UserID:    userID,
		Donations: make([]models.DonationResponse, 0, len(list)),
		Stats:     donations.ComputeStats(list, c.clock().In(c.loc)),
	}
	for _, d := range list {
		response.Donations = append(response.Donations, models.TransformDonation(d))
	}
	g.JSON(http.StatusOK, response)
}

// getDonation godoc
// @Summary Get a donation
// @Tags donations
// @Produce json
// @Param id path string true "Donation id"
// @Success 200 {object} models.DonationResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/donations/{id} [get]
func (c *DonationsController) getDonation(g *gin.Context) {
	d, err := c.ledger.GetDonation(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "LEDGER", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformDonation(d))
}

// adjustDonation godoc
// @Summary Change a donation's amount
// @Description Campaign totals and the session pool move by the difference
// @Tags donations
// @Accept json
// @Produce json
// @Param id path string true "Donation id"
// @Param request body models.AdjustDonationRequest true "New amount"
// @Success 200 {object} models.DonationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "The donation's session is closed"
// @Failure 503 {object} models.ErrorResponse
// @Router /api/donations/{id} [patch]
func (c *DonationsController) adjustDonation(g *gin.Context) {
	var req models.AdjustDonationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	d, err := c.ledger.AdjustDonation(g.Request.Context(), g.Param("id"), req.Amount)
	if err != nil {
		respondError(g, "LEDGER", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformDonation(d))
}

// reverseDonation godoc
// @Summary Delete a donation
// @Description Removes the donation and reverses its effect on totals
// @Tags donations
// @Produce json
// @Param id path string true "Donation id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "The donation's session is closed"
// @Failure 503 {object} models.ErrorResponse
// @Router /api/donations/{id} [delete]
func (c *DonationsController) reverseDonation(g *gin.Context) {
	id := g.Param("id")
	if err := c.ledger.ReverseDonation(g.Request.Context(), id); err != nil {
		respondError(g, "LEDGER", err)
		return
	}
	logging.Log.Infof("LEDGER: deleted donation %s", id)
	g.JSON(http.StatusOK, gin.H{"deleted": id})
}
