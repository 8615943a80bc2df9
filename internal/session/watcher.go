package session

import (
	"context"
	"time"

	"github.com/itradeops/itradectl/internal/logging"
)

// ActivationWatcher repeats the verification pass on a fixed interval until
// the account becomes active, the session is lost, or the context is
// cancelled. The pass runs synchronously inside the tick loop, so at most one
// request is ever in flight; ticks that fire during a slow pass are dropped.
type ActivationWatcher struct {
	guard    *Guard
	interval time.Duration
	log      logging.Logger
}

func NewActivationWatcher(guard *Guard, interval time.Duration, log logging.Logger) *ActivationWatcher {
	return &ActivationWatcher{guard: guard, interval: interval, log: log}
}

// Wait blocks until a terminal outcome: StatusAuthenticated (activation
// granted, exactly one hand-off), StatusUnauthenticated (credential lost
// while waiting), or ctx cancellation. A PendingActivation result keeps the
// loop running.
func (w *ActivationWatcher) Wait(ctx context.Context) (State, error) {
	st, err := w.guard.Check(ctx)
	if err != nil || st.Status != StatusPendingActivation {
		return st, err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return State{Status: StatusUnknown}, ctx.Err()
		case <-ticker.C:
			st, err := w.guard.Check(ctx)
			if err != nil {
				return st, err
			}
			switch st.Status {
			case StatusAuthenticated:
				w.log.Info(ctx, "account activated")
				return st, nil
			case StatusUnauthenticated:
				return st, nil
			default:
				w.log.Debug(ctx, "still awaiting activation")
			}
		}
	}
}
