package config

import "go.uber.org/zap"

// NewLogger builds the process logger. Development logging is human readable
// and includes debug output.
func (c Config) NewLogger() (*zap.Logger, error) {
	if c.DevLogging {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
