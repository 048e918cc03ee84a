package logx

import "log/slog"

var nop Logger = &SlogAdapter{l: slog.New(slog.DiscardHandler)}

// Nop returns a Logger that drops every entry. Services fall back to it when
// constructed without a logger.
func Nop() Logger { return nop }
