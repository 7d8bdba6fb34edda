package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

const (
	TIMESTAMP   = "timestamp"
	SEVERITY    = "severity"
	MESSAGE     = "message"
	COMPONENT   = "component"
	SERVICENAME = "sakura"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  TIMESTAMP,
			logrus.FieldKeyLevel: SEVERITY,
			logrus.FieldKeyMsg:   MESSAGE,
		},
	})
	logger := logrus.WithField(COMPONENT, SERVICENAME)

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
