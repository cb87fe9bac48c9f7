// @title Dilio API
// @version 1.0
// @description Round-up donations, weekly campaign voting and pool settlement

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/ITCS-6112-Dilio/dilio/docs"
	_ "time/tzdata"

	"github.com/ITCS-6112-Dilio/dilio/api"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/spf13/viper"
	"os"
	"strings"
)

func main() {
	logging.BoostrapLogger()
	if os.Getenv("APP_ENV") != "local" {
		logging.UseJSON()
	}

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the API, or one of the scheduled jobs, depending on APP_ROLE
	service := api.NewServer(config)
	service.Start()
}
