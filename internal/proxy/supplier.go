package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

const maxParallelChecks = 50

// Supplier hands out proxy URLs in round-robin order.
type Supplier interface {
	// Get returns the next proxy, or "" when none is configured.
	Get() string
	Len() int
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewStatic returns a supplier over proxies without checking them.
func NewStatic(proxies []string) Supplier {
	return &supplier{proxies: append([]string(nil), proxies...)}
}

// NewSupplier checks every proxy against the catalog endpoint and keeps the reachable ones,
// preserving their configured order.
func NewSupplier(ctx context.Context, proxies []string, endpoint string) (Supplier, error) {
	if len(proxies) == 0 {
		return NewStatic(nil), nil
	}

	log.Infof("🔄 Checking %d proxies against %s...", len(proxies), endpoint)

	reachable := make([]bool, len(proxies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelChecks)

	for i, proxyURL := range proxies {
		g.Go(func() error {
			reachable[i] = isReachable(gctx, proxyURL, endpoint)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid := make([]string, 0, len(proxies))
	for i, ok := range reachable {
		if ok {
			valid = append(valid, proxies[i])
		} else {
			log.Warnf("❌ Proxy %s is unreachable, skipping", proxies[i])
		}
	}

	log.Infof("✅ Proxy supplier ready with %d of %d proxies", len(valid), len(proxies))
	return NewStatic(valid), nil
}

func (p *supplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *supplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

// isReachable reports whether a request through proxyURL gets any HTTP answer from endpoint.
// An unsigned lookup is rejected by the catalog, so error statuses still count as reachable.
func isReachable(ctx context.Context, proxyURL, endpoint string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		log.Debugf("Proxy check failed for %s: %v", proxyURL, err)
		return false
	}

	log.Debugf("Proxy %s answered with status %d", proxyURL, resp.StatusCode())
	return true
}
