package http

import "net/http"

// HeaderInjector is a custom http.RoundTripper that sets a fixed set of headers on every request.
// It wraps another http.RoundTripper and only fills headers that are not already present.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headers are the header name/value pairs to inject.
	headers map[string]string
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
func NewHeaderInjector(next http.RoundTripper, headers map[string]string) http.RoundTripper {
	return &HeaderInjector{
		next:    next,
		headers: headers,
	}
}

// RoundTrip executes a single HTTP transaction and injects the configured headers if missing.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	for name, value := range t.headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}

	return t.next.RoundTrip(req)
}
