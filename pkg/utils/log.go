package utils

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared logger; bootstrap configures level, format and output.
var Log = logrus.New()
