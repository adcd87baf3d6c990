package db

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
)

var (
	txCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_units_of_work_committed_total",
		Help: "Units of work that committed.",
	})
	txRolledBack = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_units_of_work_rolled_back_total",
		Help: "Units of work that rolled back.",
	})
)

// Collectors returns the transaction-outcome instruments for registration on
// the application registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{txCommitted, txRolledBack}
}

// InTx runs fn as one unit of work: every row it stages commits atomically,
// or the whole unit rolls back. Storage-level integrity failures come back
// classified — DuplicateError for uniqueness, ConflictError for referential
// violations — never as raw engine errors. op names the unit for the
// ConflictError message.
func InTx(ctx context.Context, conn *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	err := conn.WithContext(ctx).Transaction(fn)
	if err != nil {
		txRolledBack.Inc()
		return Classify(err, op)
	}
	txCommitted.Inc()
	return nil
}

// Classify maps a storage error onto the core's error taxonomy. Errors that
// already belong to the taxonomy pass through unchanged.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var (
		vErr *apperr.ValidationError
		dErr *apperr.DuplicateError
		cErr *apperr.ConflictError
		nErr *apperr.NotFoundError
	)
	if errors.As(err, &vErr) || errors.As(err, &dErr) || errors.As(err, &cErr) || errors.As(err, &nErr) {
		return err
	}
	if IsDuplicateKeyErr(err) {
		return apperr.Duplicate(op)
	}
	if IsForeignKeyErr(err) {
		return apperr.Conflict(op)
	}
	return err
}
