// Package dispatch runs the shared protocol behind every mutating action:
// confirm with the operator, issue exactly one request, then reconcile the
// owning collection. Moderation actions remove the row; balance-affecting
// trading actions re-fetch it in place. There is no retry anywhere.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/itradeops/itradectl/internal/collection"
	"github.com/itradeops/itradectl/internal/logging"
)

// ErrDeclined reports that the operator answered no at the confirmation gate;
// nothing was sent.
var ErrDeclined = errors.New("action declined")

// ConfirmFunc asks the operator a yes/no question before anything is sent.
type ConfirmFunc func(prompt string) (bool, error)

// Dispatcher ties a collection to the confirm gate. One dispatcher per list
// view; keys may be in flight independently.
type Dispatcher[T any] struct {
	col     *collection.Collection[T]
	confirm ConfirmFunc
	log     logging.Logger
}

func New[T any](col *collection.Collection[T], confirm ConfirmFunc, log logging.Logger) *Dispatcher[T] {
	return &Dispatcher[T]{col: col, confirm: confirm, log: log}
}

// Remove performs confirm, call, then drops the row from the collection.
// Used when success makes the row irrelevant to the view (confirmed or
// rejected transactions, paid-out rewards).
func (d *Dispatcher[T]) Remove(ctx context.Context, key, prompt string, call func(context.Context) error) error {
	ok, err := d.confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	d.col.BeginAction(key)
	if err := call(ctx); err != nil {
		d.col.CompleteError(key)
		return err
	}
	d.col.CompleteRemove(key)
	return nil
}

// RefreshOne performs confirm, call, then re-fetches the single row so the
// view reflects the post-action server state (orders, balances). A fetch
// failure after a successful call restores the last-known-good row and is
// reported distinctly: the action itself went through.
func (d *Dispatcher[T]) RefreshOne(ctx context.Context, key, prompt string, call func(context.Context) error, fetch func(context.Context) (T, error)) error {
	ok, err := d.confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	d.col.BeginAction(key)
	if err := call(ctx); err != nil {
		d.col.CompleteError(key)
		return err
	}

	data, err := fetch(ctx)
	if err != nil {
		d.col.CompleteError(key)
		d.log.Warn(ctx, "action applied but row refresh failed", "key", key, "err", err)
		return fmt.Errorf("action applied, refreshing row: %w", err)
	}
	d.col.CompleteRefresh(key, data)
	return nil
}
