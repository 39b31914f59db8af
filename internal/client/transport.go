package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"catalog/relations/internal/config"
	"catalog/relations/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	serviceName  = "AWSECommerceService"
	operation    = "ItemLookup"
	apiVersion   = "2011-08-01"
	userAgent    = "catalog-relations/1.0 (Go)"
	acceptHeader = "application/xml,text/xml;q=0.9,*/*;q=0.8"
)

// Transport sends one signed lookup and returns the raw response body.
type Transport interface {
	Lookup(ctx context.Context, req LookupRequest) ([]byte, error)
}

type httpTransport struct {
	rl            ratelimit.Limiter
	endpoint      *url.URL
	httpClient    *resty.Client
	signer        *signer
	proxySupplier proxy.Supplier
	proxyMutex    sync.Mutex
	now           func() time.Time
}

func NewTransport(cfg config.CatalogConfig, proxySupplier proxy.Supplier) (Transport, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog endpoint %q: %w", cfg.Endpoint, err)
	}

	// Retries belong to the Invoker, so resty must not retry on its own.
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", acceptHeader)

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	window := cfg.RateWindow
	if window <= 0 {
		window = time.Second
	}

	return &httpTransport{
		rl:            ratelimit.New(cfg.RequestsPerWindow, ratelimit.Per(window)),
		endpoint:      endpoint,
		httpClient:    client,
		signer:        newSigner(cfg.AccessKey, cfg.SecretKey, cfg.AssociateTag),
		proxySupplier: proxySupplier,
		now:           time.Now,
	}, nil
}

func (t *httpTransport) Lookup(ctx context.Context, req LookupRequest) ([]byte, error) {
	t.rl.Take()

	params := req.Params()
	params.Set("Service", serviceName)
	params.Set("Operation", operation)
	params.Set("Version", apiVersion)

	signedURL := t.signer.Sign(t.endpoint, params, t.now())

	resp, err := t.httpClient.R().
		SetContext(ctx).
		Get(signedURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, &TransportError{Err: err}
	}

	if resp.IsError() {
		terr := &TransportError{StatusCode: resp.StatusCode(), Status: resp.Status()}
		if terr.RateLimited() {
			t.rotateProxy()
		}
		return nil, terr
	}

	return []byte(resp.String()), nil
}

// rotateProxy moves to the next proxy so the following attempt leaves from another address.
func (t *httpTransport) rotateProxy() {
	if t.proxySupplier == nil || t.proxySupplier.Len() < 2 {
		return
	}

	t.proxyMutex.Lock()
	defer t.proxyMutex.Unlock()

	if next := t.proxySupplier.Get(); next != "" {
		log.Infof("🔄 Rate limited, switching to proxy %s", next)
		t.httpClient.SetProxy(next)
	}
}
