package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// signer adds credentials and an HMAC-SHA256 signature over the canonical query.
type signer struct {
	accessKey    string
	secretKey    string
	associateTag string
}

func newSigner(accessKey, secretKey, associateTag string) *signer {
	return &signer{
		accessKey:    accessKey,
		secretKey:    secretKey,
		associateTag: associateTag,
	}
}

// Sign returns endpoint with the signed query attached. params is modified.
func (s *signer) Sign(endpoint *url.URL, params url.Values, at time.Time) string {
	params.Set("AWSAccessKeyId", s.accessKey)
	if s.associateTag != "" {
		params.Set("AssociateTag", s.associateTag)
	}
	params.Set("Timestamp", at.UTC().Format(timestampLayout))

	query := canonicalQuery(params)

	u := *endpoint
	u.RawQuery = query + "&Signature=" + escape(s.signature(endpoint, query))
	return u.String()
}

func (s *signer) signature(endpoint *url.URL, query string) string {
	path := endpoint.EscapedPath()
	if path == "" {
		path = "/"
	}
	toSign := strings.Join([]string{"GET", strings.ToLower(endpoint.Host), path, query}, "\n")

	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(toSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// canonicalQuery sorts parameters by byte order and percent-encodes them per RFC 3986.
func canonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			pairs = append(pairs, escape(k)+"="+escape(v))
		}
	}
	return strings.Join(pairs, "&")
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
