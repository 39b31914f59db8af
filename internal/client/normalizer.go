package client

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// ServiceNamespace is embedded in every response and stripped before parsing.
const ServiceNamespace = "http://webservices.amazon.com/AWSECommerceService/2011-08-01"

// Response carries two views over one normalized body: a strict tree for field
// extraction and a lenient markup document for tag searches.
type Response struct {
	Items  *Items
	Markup *goquery.Document
}

type envelope struct {
	Items *Items `xml:"Items"`
}

// Normalize strips the service namespace and parses body into both views.
func Normalize(body []byte) (*Response, error) {
	cleaned := bytes.ReplaceAll(body, []byte(ServiceNamespace), nil)

	var env envelope
	if err := xml.Unmarshal(cleaned, &env); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(cleaned))
	if err != nil {
		return nil, &MalformedResponseError{Err: fmt.Errorf("failed to build markup view: %w", err)}
	}

	resp := &Response{Items: env.Items, Markup: doc}

	if strict, lenient := len(resp.AllItems()), doc.Find("items > item").Length(); strict != lenient {
		log.Warnf("Response views disagree: %d items in strict tree, %d in markup", strict, lenient)
	}

	return resp, nil
}

// AllItems returns the top-level items, or nil when the Items element is absent.
func (r *Response) AllItems() []Item {
	if r == nil || r.Items == nil {
		return nil
	}
	return r.Items.Item
}

// FirstItem returns the first top-level item, or nil.
func (r *Response) FirstItem() *Item {
	items := r.AllItems()
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// Errors returns the error entries of the request echo.
func (r *Response) Errors() []APIError {
	if r == nil || r.Items == nil || r.Items.Request == nil || r.Items.Request.Errors == nil {
		return nil
	}
	return r.Items.Request.Errors.Error
}

// HasErrors reports whether the response carries an error marker.
func (r *Response) HasErrors() bool {
	return r != nil && r.Items != nil && r.Items.Request != nil && r.Items.Request.Errors != nil
}

// HasErrorCode reports whether any error entry has the given code.
func (r *Response) HasErrorCode(code string) bool {
	for _, e := range r.Errors() {
		if e.Code == code {
			return true
		}
	}
	return false
}
