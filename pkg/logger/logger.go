package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op logger until InitLogger runs, so packages can log from tests
// and library use without setup.
var Log = zap.NewNop()

func InitLogger(mode string) {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	var err error
	Log, err = config.Build()
	if err != nil {
		os.Exit(1)
	}
	zap.ReplaceGlobals(Log)
}

// Round returns a child logger tagged with a round identifier.
func Round(roundID string) *zap.Logger {
	return Log.With(zap.String("roundID", roundID))
}
