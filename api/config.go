package api

import (
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/spf13/viper"
	"sync"
)

type Config struct {
	StorageConfig
	ServerConfig
	VotingConfig
	NotifyConfig
	ArchiveConfig
	AdminConfig
}

type StorageConfig struct {
	TableNameCampaigns     string
	TableNameDonations     string
	TableNameVotes         string
	TableNameSessions      string
	TableNameReports       string
	TableNameNotifications string
	// Backend is "dynamo" (default) or "memory".
	Backend string
	// DynamoEndpoint overrides the AWS endpoint, e.g. localstack when running locally.
	DynamoEndpoint     string
	TransactionRetries int
}

type ServerConfig struct {
	Port     int
	LogLevel string
	// Role selects what the binary runs: "api" (default), "close-pool" or "broadcast".
	Role string
}

type VotingConfig struct {
	TimeZone            string
	CampaignsPerSession int
	ExcludeRecentWeeks  int
}

type NotifyConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type ArchiveConfig struct {
	ReportBucket string
	ReportPrefix string
}

type AdminConfig struct {
	AdminToken string
	// AdminTokenSecretID, when set, is read from Secrets Manager and wins over AdminToken.
	AdminTokenSecretID string
}

func (c StorageConfig) TableNames() storage.TableNames {
	return storage.TableNames{
		Campaigns:     c.TableNameCampaigns,
		Donations:     c.TableNameDonations,
		Votes:         c.TableNameVotes,
		Sessions:      c.TableNameSessions,
		Reports:       c.TableNameReports,
		Notifications: c.TableNameNotifications,
	}
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameCampaigns:     getStringOrDefault("storage.TableNameCampaigns", "Campaigns"),
			TableNameDonations:     getStringOrDefault("storage.TableNameDonations", "Donations"),
			TableNameVotes:         getStringOrDefault("storage.TableNameVotes", "Votes"),
			TableNameSessions:      getStringOrDefault("storage.TableNameSessions", "VotingSessions"),
			TableNameReports:       getStringOrDefault("storage.TableNameReports", "WeeklyReports"),
			TableNameNotifications: getStringOrDefault("storage.TableNameNotifications", "Notifications"),
			Backend:                getStringOrDefault("storage.backend", "dynamo"),
			DynamoEndpoint:         getStringOrDefault("storage.endpoint", ""),
			TransactionRetries:     getIntOrDefault("storage.transactionRetries", 5),
		},
		ServerConfig: ServerConfig{
			Port:     getIntOrDefault("server.port", 8080),
			LogLevel: getStringOrDefault("server.logLevel", "debug"),
			Role:     getStringOrDefault("APP_ROLE", RoleAPI),
		},
		VotingConfig: VotingConfig{
			TimeZone:            getStringOrDefault("voting.timezone", "UTC"),
			CampaignsPerSession: getIntOrDefault("voting.campaignsPerSession", 5),
			ExcludeRecentWeeks:  getIntOrDefault("voting.excludeRecentWeeks", 3),
		},
		NotifyConfig: NotifyConfig{
			RedisAddr:     getStringOrDefault("notify.redisAddr", ""),
			RedisPassword: getStringOrDefault("notify.redisPassword", ""),
			RedisDB:       getIntOrDefault("notify.redisDB", 0),
		},
		ArchiveConfig: ArchiveConfig{
			ReportBucket: getStringOrDefault("archive.bucket", ""),
			ReportPrefix: getStringOrDefault("archive.prefix", "reports"),
		},
		AdminConfig: AdminConfig{
			AdminToken:         getStringOrDefault("ADMIN_TOKEN", ""),
			AdminTokenSecretID: getStringOrDefault("ADMIN_TOKEN_SECRET_ID", ""),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
