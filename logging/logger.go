package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	// Usable before BoostrapLogger runs
	Log = logrus.New()
}

func BoostrapLogger() {
	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors: os.Getenv("APP_ENV") != "local",
			FullTimestamp: true,
		},
		ReportCaller: true,
		Level:        logrus.DebugLevel,
		ExitFunc:     os.Exit,
	}
}

// SetLevel applies a textual level from config. Unknown levels keep the current one.
func SetLevel(level string) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("LOGGING: unknown level %q, keeping %s", level, Log.GetLevel())
		return
	}
	Log.SetLevel(lvl)
}

// Lambda runs ship text logs to CloudWatch; JSON makes them queryable.
func UseJSON() {
	Log.SetFormatter(&logrus.JSONFormatter{})
}
