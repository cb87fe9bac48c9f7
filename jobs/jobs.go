package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/currency"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/aws/aws-lambda-go/events"
)

// PoolCloser is satisfied by *settlement.Engine.
type PoolCloser interface {
	CloseActive(ctx context.Context, now time.Time) (*settlement.Result, error)
}

// ClosePoolJob settles the voting week that just ended. It is meant to be triggered once
// a week by a schedule, right after the week ends. A week opened early is left running.
type ClosePoolJob struct {
	Closer PoolCloser
	Clock  func() time.Time
}

func NewClosePoolJob(closer PoolCloser) *ClosePoolJob {
	return &ClosePoolJob{Closer: closer, Clock: time.Now}
}

// Run returns nil when there is nothing to close, so a repeated trigger is harmless.
func (j *ClosePoolJob) Run(ctx context.Context) (*settlement.Result, error) {
	result, err := j.Closer.CloseActive(ctx, j.Clock())
	switch {
	case errors.Is(err, voting.ErrNoActiveSession), errors.Is(err, settlement.ErrAlreadyClosed):
		logging.Log.Infof("JOBS: no session to close: %v", err)
		return nil, nil
	case err != nil:
		logging.Log.Errorf("JOBS: closing the pool failed: %v", err)
		return nil, err
	}
	logging.Log.Infof("JOBS: closed %s, distributed %s across %d campaigns",
		result.Report.ID, currency.Format(result.FinalPoolAmount), len(result.Allocations))
	return result, nil
}

// Handle is the Lambda entry point for the EventBridge schedule.
func (j *ClosePoolJob) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	logging.Log.Infof("JOBS: close pool triggered by %s (%s)", event.Source, event.ID)
	_, err := j.Run(ctx)
	return err
}

const (
	BroadcastStarted    = "started"
	BroadcastEndingSoon = "ending_soon"
)

// broadcastDetail is the EventBridge detail payload, e.g. {"kind": "ending_soon"}.
type broadcastDetail struct {
	Kind string `json:"kind"`
}

type SessionOpener interface {
	GetOrCreateCurrentSession(ctx context.Context, now time.Time) (*storage.VotingSession, error)
}

// VotingBroadcastJob tells every user that voting opened or is about to close.
type VotingBroadcastJob struct {
	Sessions SessionOpener
	Notifier notify.Notifier
	Clock    func() time.Time
}

func NewVotingBroadcastJob(sessions SessionOpener, notifier notify.Notifier) *VotingBroadcastJob {
	return &VotingBroadcastJob{Sessions: sessions, Notifier: notifier, Clock: time.Now}
}

// Started opens this week's session if needed and announces it.
func (j *VotingBroadcastJob) Started(ctx context.Context) error {
	session, err := j.Sessions.GetOrCreateCurrentSession(ctx, j.Clock())
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Voting is open! Choose which of %d campaigns gets this week's pool.", len(session.Campaigns))
	return j.Notifier.Notify(ctx, notify.BroadcastUserID, notify.TypeVotingStarted, msg)
}

// EndingSoon reminds users to vote before the current session closes.
func (j *VotingBroadcastJob) EndingSoon(ctx context.Context) error {
	now := j.Clock()
	session, err := j.Sessions.GetOrCreateCurrentSession(ctx, now)
	if err != nil {
		return err
	}
	left := time.UnixMilli(session.EndDate).Sub(now).Round(time.Hour)
	msg := fmt.Sprintf("Voting closes in about %s. Pool so far: %s.", left, currency.Format(session.PoolAmount))
	return j.Notifier.Notify(ctx, notify.BroadcastUserID, notify.TypeVotingEndingSoon, msg)
}

func (j *VotingBroadcastJob) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	var detail broadcastDetail
	if len(event.Detail) > 0 {
		if err := json.Unmarshal(event.Detail, &detail); err != nil {
			return fmt.Errorf("decode event detail: %w", err)
		}
	}

	var err error
	switch detail.Kind {
	case BroadcastStarted:
		err = j.Started(ctx)
	case BroadcastEndingSoon:
		err = j.EndingSoon(ctx)
	default:
		return fmt.Errorf("unknown broadcast kind %q", detail.Kind)
	}
	if err != nil {
		logging.Log.Errorf("JOBS: %s broadcast failed: %v", detail.Kind, err)
		return err
	}
	logging.Log.Infof("JOBS: sent %s broadcast", detail.Kind)
	return nil
}
