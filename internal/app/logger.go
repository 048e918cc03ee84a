package app

import (
	"os"

	"getmystuff-courier/internal/config"
	"getmystuff-courier/internal/logx"
)

// NewLogger builds the JSON stdout logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", "getmystuff-courier"))
}
