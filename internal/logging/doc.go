// Package logging assembles the structured slog loggers used across subseek.
//
// It centralizes level parsing, console/JSON handler selection, and output
// routing, and exposes typed attribute helpers plus a no-op logger so wiring
// code and tests never hand-roll slog setup. Components receive a
// *slog.Logger explicitly; prefer NewComponentLogger so every line carries a
// component tag.
package logging
