// Package upstream holds the client for the one external API call the proxy
// makes. The API key stays inside this package: it is attached to the
// outbound request here and scrubbed from every error before it escapes.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// RequestError is returned when the request never produced a response:
// connection refused, DNS failure, or a timeout (Timeout is set for the
// latter). Reason is the transport error text with the credential redacted.
type RequestError struct {
	Timeout bool
	Reason  string
}

func (e *RequestError) Error() string {
	if e.Timeout {
		return "upstream request timed out: " + e.Reason
	}
	return "upstream request failed: " + e.Reason
}

type Client struct {
	httpClient *http.Client
	baseUrl    string
	resourceId string
	apiKey     string
}

// New builds a client for GET <baseUrl>/<resourceId>. An empty apiKey means
// the upstream is called without a credential. timeoutInMillis bounds the
// whole round trip.
func New(baseUrl string, resourceId string, apiKey string, timeoutInMillis int64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutInMillis) * time.Millisecond,
		},
		baseUrl:    strings.TrimSuffix(baseUrl, "/"),
		resourceId: resourceId,
		apiKey:     apiKey,
	}
}

// Fetch performs the one outbound call and returns the upstream body
// untouched. No retries. The outbound request shares ctx, so it is cancelled
// when the inbound connection goes away.
func (client *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.resourceUrl(), nil)
	if err != nil {
		return nil, &RequestError{Reason: client.redact(err.Error())}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		timeout := errors.As(err, &netErr) && netErr.Timeout()
		return nil, &RequestError{
			Timeout: timeout,
			Reason:  client.redact(err.Error()),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Reason: client.redact(err.Error())}
	}

	return body, nil
}

func (client *Client) resourceUrl() string {
	u := client.baseUrl + "/" + client.resourceId
	if client.apiKey != "" {
		u += "?apiKey=" + url.QueryEscape(client.apiKey)
	}
	return u
}

// redact removes the credential from s. Transport errors embed the full
// request URL, query string included, so this runs on every error text.
func (client *Client) redact(s string) string {
	if client.apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(client.apiKey), "[redacted]")
	return strings.ReplaceAll(s, client.apiKey, "[redacted]")
}
