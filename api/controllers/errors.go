package controllers

import (
	"errors"
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/donations"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/gin-gonic/gin"
	"net/http"
)

var statusByError = []struct {
	err    error
	status int
}{
	{donations.ErrInvalidAmount, http.StatusBadRequest},
	{donations.ErrMissingUser, http.StatusBadRequest},
	{voting.ErrMissingUser, http.StatusBadRequest},
	{voting.ErrCampaignNotInSession, http.StatusBadRequest},
	{campaigns.ErrInvalidCampaign, http.StatusBadRequest},
	{campaigns.ErrInvalidStatus, http.StatusBadRequest},

	{voting.ErrSessionNotFound, http.StatusNotFound},
	{settlement.ErrSessionNotFound, http.StatusNotFound},
	{settlement.ErrReportNotFound, http.StatusNotFound},
	{campaigns.ErrCampaignNotFound, http.StatusNotFound},
	{donations.ErrCampaignNotFound, http.StatusNotFound},
	{donations.ErrDonationNotFound, http.StatusNotFound},
	{storage.ErrNotFound, http.StatusNotFound},

	{voting.ErrNoActiveSession, http.StatusConflict},
	{voting.ErrSessionClosed, http.StatusConflict},
	{donations.ErrSessionClosed, http.StatusConflict},
	{settlement.ErrAlreadyClosed, http.StatusConflict},
	{campaigns.ErrInvalidTransition, http.StatusConflict},
	{storage.ErrItemWithIDAlreadyExists, http.StatusConflict},

	{settlement.ErrNoCampaigns, http.StatusUnprocessableEntity},
	{settlement.ErrCampaignNotFound, http.StatusUnprocessableEntity},

	{storage.ErrConflict, http.StatusServiceUnavailable},
}

// statusFor maps a service error to its HTTP status; unknown errors are 500.
func statusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are logged and hidden.
func respondError(g *gin.Context, area string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Log.Errorf("%s: %s %s failed: %v", area, g.Request.Method, g.Request.URL.Path, err)
		g.JSON(status, &models.ErrorResponse{Error: "unexpected internal error"})
		return
	}
	if status == http.StatusServiceUnavailable {
		g.Header("Retry-After", "1")
	}
	logging.Log.Warnf("%s: %s %s rejected: %v", area, g.Request.Method, g.Request.URL.Path, err)
	g.JSON(status, &models.ErrorResponse{Error: err.Error()})
}
