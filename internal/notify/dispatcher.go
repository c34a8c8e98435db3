package notify

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/icssc/matchy-meetups-bot/internal/logging"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
)

// Envelope is one direct message to deliver.
type Envelope struct {
	User roster.UserID
	Text string
}

// Report summarizes a fan-out.
type Report struct {
	Sent   int
	Failed int
}

// Dispatcher fans direct messages out with bounded concurrency under a rate limit.
type Dispatcher struct {
	n           Notifier
	limiter     *rate.Limiter
	concurrency int
	log         *logging.Logger
}

// NewDispatcher builds a Dispatcher. ratePerSecond <= 0 disables throttling.
func NewDispatcher(n Notifier, ratePerSecond float64, burst, concurrency int, log *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		n:           n,
		concurrency: max(1, concurrency),
		log:         log,
	}
	if ratePerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), max(1, burst))
	}
	return d
}

// Deliver sends every envelope. A failed message is logged and counted; only
// context cancellation aborts the fan-out.
func (d *Dispatcher) Deliver(ctx context.Context, envs []Envelope) (Report, error) {
	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for _, env := range envs {
		g.Go(func() error {
			if d.limiter != nil {
				if err := d.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			err := d.n.Direct(gctx, env.User, env.Text)
			d.log.LogDelivery(gctx, uint64(env.User), err)
			if err != nil {
				failed.Add(1)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	err := g.Wait()

	return Report{Sent: int(sent.Load()), Failed: int(failed.Load())}, err
}
