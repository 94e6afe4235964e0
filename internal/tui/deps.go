package tui

import "log/slog"

type Deps struct {
	// Initial values for the three fields, usually from command flags
	Length   string
	Load     string
	Position string

	Logger *slog.Logger
}
