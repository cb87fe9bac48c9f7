package api

import (
	"context"
	"fmt"
	"github.com/ITCS-6112-Dilio/dilio/api/controllers"
	"github.com/ITCS-6112-Dilio/dilio/archive"
	"github.com/ITCS-6112-Dilio/dilio/campaigns"
	"github.com/ITCS-6112-Dilio/dilio/donations"
	"github.com/ITCS-6112-Dilio/dilio/jobs"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/ITCS-6112-Dilio/dilio/settlement"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/ITCS-6112-Dilio/dilio/voting"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/gin-gonic/gin"
	"os"
	"time"
)

const (
	BackendDynamo = "dynamo"
	BackendMemory = "memory"
)

// stores groups one storage implementation per table plus the transactor over all of them.
type stores struct {
	campaigns     storage.CampaignStorage
	donations     storage.DonationStorage
	votes         storage.VoteStorage
	sessions      storage.SessionStorage
	reports       storage.ReportStorage
	notifications storage.NotificationStorage
	transactor    storage.Transactor
}

// App holds every service, wired to the configured backends.
type App struct {
	Voting     *voting.Service
	Campaigns  *campaigns.Service
	Ledger     *donations.Ledger
	Settlement *settlement.Engine
	Inbox      *notify.Inbox
	Location   *time.Location

	ClosePool *jobs.ClosePoolJob
	Broadcast *jobs.VotingBroadcastJob

	adminToken string
}

func NewApp(ctx context.Context, conf *Config, awsCfg aws.Config) (*App, error) {
	loc, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid voting timezone %q: %w", conf.TimeZone, err)
	}

	st, err := newStores(ctx, conf.StorageConfig, awsCfg)
	if err != nil {
		return nil, err
	}

	notifier := newNotifier(ctx, conf.NotifyConfig, st.notifications)

	var archiver settlement.ReportArchiver
	if conf.ReportBucket != "" {
		archiver = archive.NewS3Archiver(s3.NewFromConfig(awsCfg), conf.ReportBucket, conf.ReportPrefix)
		logging.Log.Infof("ARCHIVE: weekly reports go to s3://%s/%s", conf.ReportBucket, conf.ReportPrefix)
	}

	votingService := voting.NewService(st.sessions, st.votes, st.transactor,
		voting.NewSelector(st.campaigns, st.sessions),
		voting.Config{
			Location:            loc,
			CampaignsPerSession: conf.CampaignsPerSession,
			ExcludeRecentWeeks:  conf.ExcludeRecentWeeks,
		})
	engine := settlement.NewEngine(st.sessions, st.reports, st.transactor, notifier, archiver)

	app := &App{
		Voting:     votingService,
		Campaigns:  campaigns.NewService(st.campaigns, notifier, time.Now),
		Ledger:     donations.NewLedger(st.donations, st.sessions, st.transactor, notifier, time.Now),
		Settlement: engine,
		Inbox:      notify.NewInbox(st.notifications),
		Location:   loc,
		ClosePool:  jobs.NewClosePoolJob(engine),
		Broadcast:  jobs.NewVotingBroadcastJob(votingService, notifier),
	}

	if conf.Role == RoleAPI {
		var sm SecretsManagerAPI
		if conf.AdminTokenSecretID != "" {
			sm = secretsmanager.NewFromConfig(awsCfg)
		}
		app.adminToken, err = resolveAdminToken(ctx, sm, conf.AdminConfig)
		if err != nil {
			logging.Log.Warnf("ADMIN: admin routes are locked: %v", err)
		}
	}
	return app, nil
}

func newStores(ctx context.Context, conf StorageConfig, awsCfg aws.Config) (*stores, error) {
	if conf.Backend == BackendMemory {
		logging.Log.Warn("STORAGE: using the in-memory store, nothing is persisted")
		m := storage.NewMemoryStore()
		return &stores{
			campaigns:     m.Campaigns(),
			donations:     m.Donations(),
			votes:         m.Votes(),
			sessions:      m.Sessions(),
			reports:       m.Reports(),
			notifications: m.Notifications(),
			transactor:    m,
		}, nil
	}
	if conf.Backend != BackendDynamo {
		return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if conf.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(conf.DynamoEndpoint)
		}
	})
	tables := conf.TableNames()

	//Tables are provisioned by the deployment; create them only for local runs
	if os.Getenv("APP_ENV") == "local" {
		if err := storage.EnsureTables(ctx, client, tables); err != nil {
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}

	return &stores{
		campaigns:     &storage.DynamoCampaignStorage{Client: client, TableName: tables.Campaigns},
		donations:     &storage.DynamoDonationStorage{Client: client, TableName: tables.Donations},
		votes:         &storage.DynamoVoteStorage{Client: client, TableName: tables.Votes},
		sessions:      &storage.DynamoSessionStorage{Client: client, TableName: tables.Sessions},
		reports:       &storage.DynamoReportStorage{Client: client, TableName: tables.Reports},
		notifications: &storage.DynamoNotificationStorage{Client: client, TableName: tables.Notifications},
		transactor:    &storage.DynamoTransactor{Client: client, Tables: tables, MaxAttempts: conf.TransactionRetries},
	}, nil
}

// newNotifier always keeps the inbox; Redis fan-out is added when configured and reachable.
func newNotifier(ctx context.Context, conf NotifyConfig, inbox storage.NotificationStorage) notify.Notifier {
	store := notify.NewStoreNotifier(inbox)
	if conf.RedisAddr == "" {
		return store
	}
	rdb, err := notify.NewRedis(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
	if err != nil {
		logging.Log.Warnf("NOTIFY: redis at %s unavailable, publishing disabled: %v", conf.RedisAddr, err)
		return store
	}
	logging.Log.Infof("NOTIFY: publishing notifications to redis at %s", conf.RedisAddr)
	return notify.Multi{store, notify.NewRedisPublisher(rdb)}
}

// RegisterRoutes mounts every controller on engine.
func (a *App) RegisterRoutes(engine *gin.Engine) {
	controllers.NewVotingController(a.Voting).RegisterRoutes(engine)
	controllers.NewDonationsController(a.Ledger, a.Location).RegisterRoutes(engine)
	controllers.NewCampaignsController(a.Campaigns).RegisterRoutes(engine)
	controllers.NewNotificationsController(a.Inbox).RegisterRoutes(engine)
	controllers.NewAdminController(a.Campaigns, a.Settlement, a.adminToken).RegisterRoutes(engine)
}
