package log

import (
	"github.com/sirupsen/logrus"
)

var debug bool

// SetDebug enables debug level logging for all Logs created after the call.
func SetDebug(on bool) {
	debug = on
}

type Log struct {
	*logrus.Entry
}

func New(pkg string) Log {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return Log{Entry: log.WithField("pkg", pkg)}
}
