package api

import (
	"context"
	testutils "github.com/ITCS-6112-Dilio/dilio/api/controllers/testing"
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/api/transport"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func memoryConfig() *Config {
	return &Config{
		StorageConfig: StorageConfig{Backend: BackendMemory},
		ServerConfig:  ServerConfig{Role: RoleAPI},
		VotingConfig:  VotingConfig{TimeZone: "UTC", CampaignsPerSession: 5, ExcludeRecentWeeks: 3},
		AdminConfig:   AdminConfig{AdminToken: "secret"},
	}
}

func TestNewApp_Memory(t *testing.T) {
	logging.Log = logrus.New()

	app, err := NewApp(context.Background(), memoryConfig(), aws.Config{})
	require.NoError(t, err)

	r := transport.NewRouter(gin.TestMode)
	app.RegisterRoutes(r)

	w := testutils.PerformRequest(r, http.MethodPost, "/api/campaigns",
		models.CreateCampaignRequest{Name: "Shelter", OrganizerID: "org-1", Goal: 200}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutils.PerformRequest(r, http.MethodGet, "/api/admin/campaigns/pending", nil, map[string]string{"x-admin-token": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(r, http.MethodGet, "/api/voting/current", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	logging.Log = logrus.New()

	conf := memoryConfig()
	conf.TimeZone = "Mars/Olympus_Mons"
	_, err := NewApp(context.Background(), conf, aws.Config{})
	assert.Error(t, err)

	conf = memoryConfig()
	conf.Backend = "postgres"
	_, err = NewApp(context.Background(), conf, aws.Config{})
	assert.Error(t, err)
}

func TestNewApp_LockedAdmin(t *testing.T) {
	logging.Log = logrus.New()

	conf := memoryConfig()
	conf.AdminToken = ""
	app, err := NewApp(context.Background(), conf, aws.Config{})
	require.NoError(t, err)

	r := transport.NewRouter(gin.TestMode)
	app.RegisterRoutes(r)
	w := testutils.PerformRequest(r, http.MethodGet, "/api/admin/reports", nil, map[string]string{"x-admin-token": ""})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
