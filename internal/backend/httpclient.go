package backend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"synbalance/cli/internal/logging"
	"synbalance/cli/internal/manifest"
)

// maxBodyBytes bounds every response body the client reads.
const maxBodyBytes = 1 << 20

// Options configures the HTTP client.
type Options struct {
	// Jar carries the shared session cookie. Without it requests are anonymous.
	Jar http.CookieJar
	// Timeout bounds each request; zero means 10 seconds.
	Timeout time.Duration
	// Transport overrides the round tripper (tests).
	Transport http.RoundTripper
	// UserAgent is sent on every request.
	UserAgent string
	Logger    *pterm.Logger
}

// HTTP implements API over the REST endpoints exposed through the proxy.
type HTTP struct {
	// baseURL is the proxy origin (e.g., "https://login.synbalance.com.br")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client; its Jar makes every request credentialed
	client    *http.Client
	userAgent string
	log       *pterm.Logger
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints manifest.HTTPEndpoints, opts Options) *HTTP {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "synbalance-cli"
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client: &http.Client{
			Timeout:   timeout,
			Jar:       opts.Jar,
			Transport: opts.Transport,
		},
		userAgent: ua,
		log:       log,
	}
}

// newRequest builds a request for an origin-relative path with the standard
// headers. Each request carries its own X-Request-ID so it can be traced on
// whichever instance the proxy picks.
func (h *HTTP) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, */*")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends the request and logs its outcome at trace level.
func (h *HTTP) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := h.client.Do(req)
	args := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get("X-Request-ID"),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	}
	if err != nil {
		h.log.Trace("request failed", h.log.Args(append(args, "error", logging.Mask(err.Error()))...))
		return nil, err
	}
	h.log.Trace("request done", h.log.Args(append(args, "status", resp.StatusCode)...))
	return resp, nil
}

// drain discards the rest of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }
