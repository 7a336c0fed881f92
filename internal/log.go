package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger used to trace the interpreter phases
func NewLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return log
}
