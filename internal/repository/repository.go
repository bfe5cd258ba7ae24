// Package repository holds the LightBnB data-access functions.
//
// Every method builds one parameterized statement, runs it on the
// injected database.Querier and maps rows into model types. Failures
// come back as *sqlerr.QueryError; a missing user is a nil result,
// not an error.
package repository

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/stevenls811118/LightBnB/internal/database"
)

// base is embedded by every repository.
type base struct {
	db                 database.Querier
	logger             *zerolog.Logger
	slowQueryThreshold time.Duration
}

func newBase(db database.Querier, logger *zerolog.Logger, slowQueryThreshold time.Duration) base {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return base{db: db, logger: logger, slowQueryThreshold: slowQueryThreshold}
}

// observe logs the duration of op, escalating to a warning past the
// slow query threshold.
func (b base) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)

	event := b.logger.Debug()
	if b.slowQueryThreshold > 0 && elapsed > b.slowQueryThreshold {
		event = b.logger.Warn().Dur("threshold", b.slowQueryThreshold)
	}

	event.
		Str("operation", op).
		Dur("duration", elapsed).
		Bool("failed", err != nil).
		Msg("query executed")
}
