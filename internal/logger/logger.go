package logger

import (
	"github.com/sirupsen/logrus"
)

// Log - логгер процесса. До вызова Init пишет в stderr с уровнем Info.
var Log = logrus.New()

// Init настраивает структурированный логгер: JSON для production, текст для остальных окружений.
func Init(level, env string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if env == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// WithComponent возвращает запись с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
