package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"catalog/relations/internal/client"
	"catalog/relations/internal/config"
)

// fakeCatalog serves canned documents keyed by item id, response groups and page.
// Unknown requests get a valid response without items.
type fakeCatalog struct {
	mu          sync.Mutex
	responses   map[string]string
	failures    map[string]error
	rateLimited map[string]int
	calls       []client.LookupRequest
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		responses:   make(map[string]string),
		failures:    make(map[string]error),
		rateLimited: make(map[string]int),
	}
}

func requestKey(id string, page int, groups ...string) string {
	return fmt.Sprintf("%s|%s|%d", id, strings.Join(groups, ","), page)
}

func (f *fakeCatalog) on(id string, page int, body string, groups ...string) {
	f.responses[requestKey(id, page, groups...)] = body
}

func (f *fakeCatalog) fail(id string, page int, err error, groups ...string) {
	f.failures[requestKey(id, page, groups...)] = err
}

func (f *fakeCatalog) rateLimit(id string, page, times int, groups ...string) {
	f.rateLimited[requestKey(id, page, groups...)] = times
}

func (f *fakeCatalog) Lookup(ctx context.Context, req client.LookupRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req)
	key := requestKey(req.ItemID, req.RelatedItemPage, req.ResponseGroups...)

	if n := f.rateLimited[key]; n > 0 {
		f.rateLimited[key] = n - 1
		return nil, &client.TransportError{StatusCode: http.StatusServiceUnavailable, Status: "503 Service Unavailable"}
	}
	if err, ok := f.failures[key]; ok {
		return nil, err
	}
	if body, ok := f.responses[key]; ok {
		return []byte(body), nil
	}
	return []byte(document("")), nil
}

func (f *fakeCatalog) callsFor(id string) []client.LookupRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []client.LookupRequest
	for _, c := range f.calls {
		if c.ItemID == id {
			out = append(out, c)
		}
	}
	return out
}

func newTestResolver(catalog *fakeCatalog) *Resolver {
	return New(client.NewInvoker(catalog, config.CatalogConfig{BackoffMean: time.Millisecond}))
}

const (
	groupAttributes = client.ResponseGroupItemAttributes
	groupRelated    = client.ResponseGroupRelatedItems
	groupVariations = client.ResponseGroupVariations
)

// document wraps items in a namespaced ItemLookupResponse.
func document(items string) string {
	return `<?xml version="1.0" ?>
<ItemLookupResponse xmlns="` + client.ServiceNamespace + `">
  <Items>
    <Request><IsValid>True</IsValid></Request>
    ` + items + `
  </Items>
</ItemLookupResponse>`
}

func errorDocument(code string) string {
	return `<?xml version="1.0" ?>
<ItemLookupResponse xmlns="` + client.ServiceNamespace + `">
  <Items>
    <Request>
      <IsValid>True</IsValid>
      <Errors><Error><Code>` + code + `</Code><Message>rejected</Message></Error></Errors>
    </Request>
  </Items>
</ItemLookupResponse>`
}

func attributesItem(asin, group string) string {
	return `<Item><ASIN>` + asin + `</ASIN><ItemAttributes><ProductGroup>` + group + `</ProductGroup></ItemAttributes></Item>`
}

func relatedItemsItem(asin string, pageCount int, related ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<Item><ASIN>%s</ASIN><RelatedItems><Relationship>Children</Relationship>`, asin)
	fmt.Fprintf(&b, `<RelationshipType>AuthorityTitle</RelationshipType><RelatedItemPageCount>%d</RelatedItemPageCount>`, pageCount)
	b.WriteString(strings.Join(related, ""))
	b.WriteString(`</RelatedItems></Item>`)
	return b.String()
}

func relatedItem(asin, group string) string {
	return `<RelatedItem>` + attributesItem(asin, group) + `</RelatedItem>`
}
