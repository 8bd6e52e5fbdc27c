// Package gateways contains the HTTP-backed implementations of the order
// context's collaborator contracts (product catalog, payment provider,
// customer identity). Each call is a blocking request with a bounded timeout;
// failures are not retried here and propagate to the orchestrators.
package gateways

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// errUpstream wraps transport and unexpected-status failures from
// collaborators. It is not a domain sentinel: errhttp maps it to a generic
// 500 without leaking collaborator internals.
var errUpstream = errors.New("upstream service error")

// NewClient returns an *http.Client with the given total-request timeout and
// an OTel-instrumented transport, shared by all collaborator gateways.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func unexpectedStatus(service string, status int) error {
	return fmt.Errorf("%w: %s returned status %d", errUpstream, service, status)
}
