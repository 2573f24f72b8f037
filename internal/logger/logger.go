package logger

import (
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/config"
)

// Setup initializes Logrus. In production output goes to a rotating file;
// in development it stays on stdout at debug level.
func Setup(cfg config.Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if cfg.Production() {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
		logrus.SetOutput(rotator)
		logrus.SetLevel(logrus.InfoLevel)
		return
	}

	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.DebugLevel)
}
