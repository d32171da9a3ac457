// Package testutil provides deterministic fixtures for tests: record
// builders, a seeded source of well readings, a fixed model identifier
// and a slog handler that records what was logged.
package testutil
