package controllers

import (
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"time"
)

const defaultPastSessions = 10

type VotingController struct {
	voting *voting.Service
	clock  func() time.Time
}

func NewVotingController(v *voting.Service) *VotingController {
	return &VotingController{
		voting: v,
		clock:  time.Now,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/voting")

	group.GET("/current", c.getCurrentSession)
	group.GET("/sessions/:id", c.getSession)
	group.GET("/past", c.getPastSessions)
	group.POST("/vote", c.submitVote)
	group.GET("/vote/:sessionId/:userId", c.getUserVote)
}

// getCurrentSession godoc
// @Summary Get the current voting session
// @Description Returns this week's session, creating it with a fresh set of campaigns on first access
// @Tags voting
// @Produce json
// @Param userId query string false "Include this user's vote"
// @Success 200 {object} models.SessionResponse
// @Failure 409 {object} models.ErrorResponse "This week's session is already closed"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/voting/current [get]
func (c *VotingController) getCurrentSession(g *gin.Context) {
	ctx := g.Request.Context()
	session, err := c.voting.GetOrCreateCurrentSession(ctx, c.clock())
	if err != nil {
		respondError(g, "VOTING", err)
		return
	}

	r := models.TransformSession(session, nil)
	if userID := g.Query("userId"); userID != "" {
		vote, err := c.voting.GetUserVote(ctx, userID, session.ID)
		if err != nil {
			respondError(g, "VOTING", err)
			return
		}
		r.UserVote = models.TransformVote(vote)
	}
	g.JSON(http.StatusOK, r)
}

// getSession godoc
// @Summary Get a voting session
// @Tags voting
// @Produce json
// @Param id path string true "Session id (week start, YYYY-MM-DD)"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/voting/sessions/{id} [get]
func (c *VotingController) getSession(g *gin.Context) {
	session, err := c.voting.GetSession(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "VOTING", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformSession(session, nil))
}

// getPastSessions godoc
// @Summary List closed voting sessions
// @Description Closed sessions, newest first
// @Tags voting
// @Produce json
// @Param limit query int false "Maximum number of sessions" default(10)
// @Success 200 {array} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/voting/past [get]
func (c *VotingController) getPastSessions(g *gin.Context) {
	limit := defaultPastSessions
	if raw := g.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "limit must be a positive number"})
			return
		}
		limit = v
	}

	sessions, err := c.voting.GetPastSessions(g.Request.Context(), limit)
	if err != nil {
		respondError(g, "VOTING", err)
		return
	}

	response := make([]models.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, models.TransformSession(s, nil))
	}
	g.JSON(http.StatusOK, response)
}

// submitVote godoc
// @Summary Submit or change a vote
// @Description Records the user's vote for a campaign of the session. Voting again moves the vote.
// @Tags voting
// @Accept json
// @Produce json
// @Param vote body models.SubmitVoteRequest true "Vote"
// @Success 200 {object} models.VoteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid vote data"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Failure 409 {object} models.ErrorResponse "Session closed"
// @Failure 503 {object} models.ErrorResponse "Concurrent update, retry"
// @Router /api/voting/vote [post]
func (c *VotingController) submitVote(g *gin.Context) {
	var req models.SubmitVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if req.CampaignID == "" || req.SessionID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "campaignId and sessionId are required"})
		return
	}

	vote, err := c.voting.SubmitOrChangeVote(g.Request.Context(), req.UserID, req.CampaignID, req.SessionID, c.clock())
	if err != nil {
		respondError(g, "VOTING", err)
		return
	}

	logging.Log.Infof("VOTING: user %s voted for %s in %s", vote.UserID, vote.CampaignID, vote.SessionID)
	g.JSON(http.StatusOK, models.TransformVote(vote))
}

// getUserVote godoc
// @Summary Get a user's vote in a session
// @Tags voting
// @Produce json
// @Param sessionId path string true "Session id"
// @Param userId path string true "User id"
// @Success 200 {object} models.UserVoteResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/voting/vote/{sessionId}/{userId} [get]
func (c *VotingController) getUserVote(g *gin.Context) {
	vote, err := c.voting.GetUserVote(g.Request.Context(), g.Param("userId"), g.Param("sessionId"))
	if err != nil {
		respondError(g, "VOTING", err)
		return
	}
	g.JSON(http.StatusOK, &models.UserVoteResponse{Voted: vote != nil, Vote: models.TransformVote(vote)})
}
