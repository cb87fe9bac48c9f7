package controllers

import (
	"context"
	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/donations"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

const testAdminToken = "secret"

// wednesday sits in the week whose session id is 2025-01-05.
var wednesday = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

var adminHeaders = map[string]string{"x-admin-token": testAdminToken}

type testApp struct {
	router *gin.Engine
	store  *storage.MemoryStore
	now    time.Time
}

func (a *testApp) clock() time.Time {
	return a.now
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	logging.Log = logrus.New()

	app := &testApp{store: storage.NewMemoryStore(), now: wednesday}
	store := app.store
	notifier := notify.NewStoreNotifier(store.Notifications())

	votingService := voting.NewService(store.Sessions(), store.Votes(), store,
		voting.NewSelector(store.Campaigns(), store.Sessions()),
		voting.Config{Location: time.UTC, CampaignsPerSession: 5, ExcludeRecentWeeks: 3})
	campaignService := campaigns.NewService(store.Campaigns(), notifier, app.clock)
	ledger := donations.NewLedger(store.Donations(), store.Sessions(), store, notifier, app.clock)
	engine := settlement.NewEngine(store.Sessions(), store.Reports(), store, notifier, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	votingController := NewVotingController(votingService)
	votingController.clock = app.clock
	votingController.RegisterRoutes(r)

	donationsController := NewDonationsController(ledger, time.UTC)
	donationsController.clock = app.clock
	donationsController.RegisterRoutes(r)

	NewCampaignsController(campaignService).RegisterRoutes(r)
	NewNotificationsController(notify.NewInbox(store.Notifications())).RegisterRoutes(r)

	adminController := NewAdminController(campaignService, engine, testAdminToken)
	adminController.clock = app.clock
	adminController.RegisterRoutes(r)

	app.router = r
	return app
}

// seedCampaign stores an approved campaign directly.
func (a *testApp) seedCampaign(t *testing.T, id, name string, goal float64) {
	t.Helper()
	require.NoError(t, a.store.Campaigns().Create(context.Background(), &storage.Campaign{
		ID:          id,
		Name:        name,
		OrganizerID: "org-" + id,
		Goal:        goal,
		Status:      storage.StatusApproved,
		CreatedAt:   a.now,
	}))
}
