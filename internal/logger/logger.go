// Package logger holds the process-wide zap sugared logger used across
// nestegg: the ledger persistence path, HTTP middleware, and the server
// entrypoints all log through Get.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger for the given environment. "production"
// selects the JSON encoder; anything else (development, test) gets the
// human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		default:
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			// Never fail startup over logging.
			base = zap.NewNop()
		}

		sugar = base.Named("nestegg").Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// on first use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Called on server shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
