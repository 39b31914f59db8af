package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"catalog/relations/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"
)

var (
	lookupAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_lookup_attempts_total",
		Help: "Catalog lookup attempts by response group and outcome",
	}, []string{"response_group", "outcome"})

	lookupBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_lookup_backoff_seconds",
		Help:    "Time spent waiting after a rate-limited lookup",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})
)

type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeError       Outcome = "error"
)

// Attempt describes one round trip made by the Invoker.
type Attempt struct {
	Request LookupRequest
	Number  int
	Outcome Outcome
	Err     error
}

type InvokerOption func(*Invoker)

// WithObserver registers fn to be called after every attempt.
func WithObserver(fn func(Attempt)) InvokerOption {
	return func(i *Invoker) {
		i.observer = fn
	}
}

// Invoker is the only path to the catalog service. Rate-limited lookups are retried after an
// exponentially distributed delay; every other failure is returned at once.
type Invoker struct {
	transport   Transport
	maxRetries  uint64
	backoffMean time.Duration
	observer    func(Attempt)
	expFloat64  func() float64
}

func NewInvoker(transport Transport, cfg config.CatalogConfig, opts ...InvokerOption) *Invoker {
	inv := &Invoker{
		transport:   transport,
		maxRetries:  cfg.MaxRetries,
		backoffMean: cfg.BackoffMean,
		expFloat64:  rand.ExpFloat64,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke performs req and returns the raw response body. Failures are *RemoteError.
func (i *Invoker) Invoke(ctx context.Context, req LookupRequest) ([]byte, error) {
	var body []byte
	attempts := 0

	err := retry.Do(ctx, i.backoff(req), func(ctx context.Context) error {
		attempts++
		log.Debugf("Lookup %s [%s] attempt %d", req.ItemID, req.ResponseGroupParam(), attempts)

		b, err := i.transport.Lookup(ctx, req)
		i.observe(req, attempts, err)
		if err != nil {
			if IsRateLimited(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		body = b
		return nil
	})
	if err != nil {
		if IsRateLimited(err) {
			err = fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
		}
		return nil, &RemoteError{Request: req, Attempts: attempts, Err: err}
	}

	return body, nil
}

func (i *Invoker) backoff(req LookupRequest) retry.Backoff {
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		wait := time.Duration(i.expFloat64() * float64(i.backoffMean))
		lookupBackoffSeconds.Observe(wait.Seconds())
		log.Warnf("⏳ Rate limited on %s [%s], waiting %v", req.ItemID, req.ResponseGroupParam(), wait.Round(time.Millisecond))
		return wait, false
	})

	if i.maxRetries > 0 {
		b = retry.WithMaxRetries(i.maxRetries, b)
	}
	return b
}

func (i *Invoker) observe(req LookupRequest, number int, err error) {
	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case IsRateLimited(err):
		outcome = OutcomeRateLimited
	default:
		outcome = OutcomeError
	}

	lookupAttemptsTotal.WithLabelValues(req.ResponseGroupParam(), string(outcome)).Inc()

	if i.observer != nil {
		i.observer(Attempt{Request: req, Number: number, Outcome: outcome, Err: err})
	}
}
