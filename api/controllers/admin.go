package controllers

import (
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/api/transport"
	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"time"
)

type AdminController struct {
	campaigns *campaigns.Service
	engine    *settlement.Engine
	token     string
	clock     func() time.Time
}

func NewAdminController(c *campaigns.Service, engine *settlement.Engine, token string) *AdminController {
	return &AdminController{
		campaigns: c,
		engine:    engine,
		token:     token,
		clock:     time.Now,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware(c.token))

	group.GET("/campaigns/pending", c.listPending)
	group.POST("/campaigns/:id/approve", c.approve)
	group.POST("/campaigns/:id/reject", c.reject)
	group.POST("/sessions/:id/close", c.closeSession)
	group.POST("/sessions/close-active", c.closeActive)
	group.GET("/reports", c.listReports)
	group.GET("/reports/:id", c.getReport)
}

// @Security AdminToken
// listPending godoc
// @Summary List campaigns waiting for review
// @Tags admin
// @Produce json
// @Success 200 {array} storage.Campaign
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/campaigns/pending [get]
func (c *AdminController) listPending(g *gin.Context) {
	list, err := c.campaigns.ListByStatus(g.Request.Context(), storage.StatusPending)
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	logging.Log.Infof("ADMIN: listed %d pending campaigns", len(list))
	g.JSON(http.StatusOK, list)
}

// @Security AdminToken
// approve godoc
// @Summary Approve a pending campaign
// @Tags admin
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} storage.Campaign
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Campaign is not pending"
// @Router /api/admin/campaigns/{id}/approve [post]
func (c *AdminController) approve(g *gin.Context) {
	campaign, err := c.campaigns.Approve(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	logging.Log.Infof("ADMIN: approved campaign %s", campaign.ID)
	g.JSON(http.StatusOK, campaign)
}

// @Security AdminToken
// reject godoc
// @Summary Reject a pending campaign
// @Tags admin
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} storage.Campaign
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Campaign is not pending"
// @Router /api/admin/campaigns/{id}/reject [post]
func (c *AdminController) reject(g *gin.Context) {
	campaign, err := c.campaigns.Reject(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	logging.Log.Infof("ADMIN: rejected campaign %s", campaign.ID)
	g.JSON(http.StatusOK, campaign)
}

// @Security AdminToken
// closeSession godoc
// @Summary Close a voting session and distribute its pool
// @Tags admin
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} models.CloseSessionResponse
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Failure 409 {object} models.ErrorResponse "Session already closed"
// @Failure 422 {object} models.ErrorResponse "Session has no campaigns"
// @Failure 503 {object} models.ErrorResponse
// @Router /api/admin/sessions/{id}/close [post]
func (c *AdminController) closeSession(g *gin.Context) {
	result, err := c.engine.CloseSession(g.Request.Context(), g.Param("id"), c.clock())
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCloseResult(result))
}

// @Security AdminToken
// closeActive godoc
// @Summary Close the oldest active voting session whose week has ended
// @Tags admin
// @Produce json
// @Success 200 {object} models.CloseSessionResponse
// @Failure 409 {object} models.ErrorResponse "No ended session is active"
// @Failure 422 {object} models.ErrorResponse
// @Router /api/admin/sessions/close-active [post]
func (c *AdminController) closeActive(g *gin.Context) {
	result, err := c.engine.CloseActive(g.Request.Context(), c.clock())
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCloseResult(result))
}

// @Security AdminToken
// listReports godoc
// @Summary List weekly reports
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum number of reports"
// @Success 200 {array} storage.WeeklyReport
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/reports [get]
func (c *AdminController) listReports(g *gin.Context) {
	limit := 0
	if raw := g.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "limit must be a positive number"})
			return
		}
		limit = v
	}

	reports, err := c.engine.ListReports(g.Request.Context(), limit)
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	g.JSON(http.StatusOK, reports)
}

// @Security AdminToken
// getReport godoc
// @Summary Get a weekly report
// @Tags admin
// @Produce json
// @Param id path string true "Report id (the session id)"
// @Success 200 {object} storage.WeeklyReport
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/reports/{id} [get]
func (c *AdminController) getReport(g *gin.Context) {
	report, err := c.engine.GetReport(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}
	g.JSON(http.StatusOK, report)
}
