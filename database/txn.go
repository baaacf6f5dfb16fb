package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTxnExhausted is returned once a transaction has failed with transient
// conflicts more times than the retry budget allows.
var ErrTxnExhausted = errors.New("transaction retries exhausted")

const transientTxnLabel = "TransientTransactionError"

// RunTxn executes fn inside a MongoDB multi-document transaction. Conflicting
// transactions surface as transient errors; those are retried up to
// maxAttempts times with linear backoff, then give up with ErrTxnExhausted.
// Any other failure aborts and is returned as-is.
func RunTxn(ctx context.Context, client *mongo.Client, maxAttempts int, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if err == nil {
			return nil
		}
		if !IsTransientTxn(err) {
			return err
		}

		lastErr = err
		select {
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrTxnExhausted, maxAttempts, lastErr)
}

// IsTransientTxn reports whether err is a retryable transaction conflict.
func IsTransientTxn(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel(transientTxnLabel) {
		return true
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && writeErr.HasErrorLabel(transientTxnLabel) {
		return true
	}
	return false
}

// IsPermissionDenied reports whether err is an authorization failure from the
// store. These are fatal for the caller, never retried.
func IsPermissionDenied(err error) bool {
	const unauthorized = 13

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == unauthorized
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == unauthorized {
				return true
			}
		}
	}
	return false
}
