package main

import (
	"github.com/atlanticdynamic/mcpdemo/internal/logging"
)

// SetupLogger configures the default logger based on provided format and log level
func SetupLogger(format, logLevel string) {
	logging.SetupLogger(format, logLevel)
}
