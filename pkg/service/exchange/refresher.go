package exchange

import (
	"context"
	"time"
)

// Refresher keeps the published table current.
type Refresher struct {
	svc      *Service
	interval time.Duration
}

// NewRefresher returns a refresher for svc. An interval <= 0 means a
// single fetch at startup.
func NewRefresher(svc *Service, interval time.Duration) *Refresher {
	return &Refresher{svc: svc, interval: interval}
}

// Run fetches once with the default base, then again on every tick until
// ctx is cancelled. Fetch failures are logged by the service and never
// stop the loop.
func (r *Refresher) Run(ctx context.Context) {
	_, _ = r.svc.FetchRates(ctx, "")
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.svc.logger.Info("Rate refresher stopped")
			return
		case <-ticker.C:
			base := r.svc.defaultBase
			if t := r.svc.Current(); t != nil {
				base = t.Base
			}
			_, _ = r.svc.FetchRates(ctx, base)
		}
	}
}
