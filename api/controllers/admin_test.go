package controllers

import (
	testutils "github.com/ITCS-6112-Dilio/dilio/api/controllers/testing"
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
	"time"
)

func TestAdminAuth(t *testing.T) {
	app := setupTestApp(t)

	w := testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports", nil, map[string]string{"x-admin-token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports", nil, adminHeaders)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewCampaigns(t *testing.T) {
	app := setupTestApp(t)
	first := createCampaign(t, app, models.CreateCampaignRequest{Name: "Garden", OrganizerID: "org-1", Goal: 80})
	second := createCampaign(t, app, models.CreateCampaignRequest{Name: "Lanterns", OrganizerID: "org-2", Goal: 40})

	t.Run("Happy path - list pending", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/campaigns/pending", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code)
		var list []storage.Campaign
		testutils.DecodeBody(t, w, &list)
		assert.Len(t, list, 2)
	})

	t.Run("Happy path - approve notifies the organizer", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/campaigns/"+first.ID+"/approve", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var c storage.Campaign
		testutils.DecodeBody(t, w, &c)
		assert.Equal(t, storage.StatusApproved, c.Status)

		inbox := listInbox(t, app, "org-1")
		require.Len(t, inbox, 1)
		assert.Equal(t, notify.TypeCampaignApproved, inbox[0].Type)
	})

	t.Run("Happy path - reject", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/campaigns/"+second.ID+"/reject", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		inbox := listInbox(t, app, "org-2")
		require.Len(t, inbox, 1)
		assert.Equal(t, notify.TypeCampaignRejected, inbox[0].Type)
	})

	t.Run("Unhappy path - only pending campaigns can be reviewed", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/campaigns/"+first.ID+"/reject", nil, adminHeaders)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unhappy path - unknown campaign", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/campaigns/missing/approve", nil, adminHeaders)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCloseSession(t *testing.T) {
	app := setupTestApp(t)
	app.seedCampaign(t, "A", "Alpha", 1000)
	app.seedCampaign(t, "B", "Beta", 1000)
	session := getCurrentSession(t, app, "/api/voting/current")

	for i, campaignID := range []string{"A", "A", "A", "B"} {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/voting/vote",
			models.SubmitVoteRequest{UserID: []string{"u1", "u2", "u3", "u4"}[i], CampaignID: campaignID, SessionID: session.ID}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	recordDonation(t, app, models.RecordDonationRequest{UserID: "u1", CampaignID: "general", Amount: 60})
	recordDonation(t, app, models.RecordDonationRequest{UserID: "u2", CampaignID: "general", Amount: 40})

	t.Run("Happy path - three to one split", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/"+session.ID+"/close", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var res models.CloseSessionResponse
		testutils.DecodeBody(t, w, &res)

		assert.Equal(t, "A", res.WinnerID)
		assert.Equal(t, 100.0, res.FinalPoolAmount)
		earned := map[string]float64{}
		for _, a := range res.Allocations {
			earned[a.CampaignID] = a.Amount
		}
		assert.Equal(t, map[string]float64{"A": 67.5, "B": 32.5}, earned)
		assert.Equal(t, 67.5, campaignRaised(t, app, "A"))
		assert.Equal(t, 32.5, campaignRaised(t, app, "B"))
	})

	t.Run("Unhappy path - second close", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/"+session.ID+"/close", nil, adminHeaders)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 67.5, campaignRaised(t, app, "A"))
	})

	t.Run("Unhappy path - nothing ended", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/close-active", nil, adminHeaders)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unhappy path - unknown session", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/1999-01-03/close", nil, adminHeaders)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Happy path - reports", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports/"+session.ID, nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var report storage.WeeklyReport
		testutils.DecodeBody(t, w, &report)
		assert.Equal(t, "Alpha", report.WinnerName)
		assert.Equal(t, 100.0, report.TotalAmount)
		assert.Equal(t, 4, report.TotalVotes)

		w = testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports?limit=1", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code)
		var reports []storage.WeeklyReport
		testutils.DecodeBody(t, w, &reports)
		assert.Len(t, reports, 1)

		w = testutils.PerformRequest(app.router, http.MethodGet, "/api/admin/reports/1999-01-03", nil, adminHeaders)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCloseSession_NoCampaigns(t *testing.T) {
	app := setupTestApp(t)
	// No approved campaigns: the week's session is created empty.
	session := getCurrentSession(t, app, "/api/voting/current")
	require.Empty(t, session.Campaigns)

	w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/"+session.ID+"/close", nil, adminHeaders)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCloseActive_AfterNewWeekOpened(t *testing.T) {
	app := setupTestApp(t)
	app.seedCampaign(t, "A", "Alpha", 1000)
	lastWeek := getCurrentSession(t, app, "/api/voting/current")
	require.Equal(t, "2025-01-05", lastWeek.ID)

	// Sunday just after midnight: the new week is opened before the pool is closed.
	app.now = wednesday.AddDate(0, 0, 4).Add(-12*time.Hour + time.Minute)
	current := getCurrentSession(t, app, "/api/voting/current")
	require.Equal(t, "2025-01-12", current.ID)

	t.Run("Happy path - the ended week is closed", func(t *testing.T) {
		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/close-active", nil, adminHeaders)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp models.CloseSessionResponse
		testutils.DecodeBody(t, w, &resp)
		assert.Equal(t, "2025-01-05", resp.SessionID)
	})

	t.Run("Happy path - the running week stays open", func(t *testing.T) {
		session := getCurrentSession(t, app, "/api/voting/current")
		assert.Equal(t, "2025-01-12", session.ID)
		assert.True(t, session.Active)

		w := testutils.PerformRequest(app.router, http.MethodPost, "/api/admin/sessions/close-active", nil, adminHeaders)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
