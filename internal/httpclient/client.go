// Package httpclient builds the HTTP clients used to reach recognizer
// endpoints. Endpoints are operator-configured, so requests go through
// URL validation: scheme allow-list, redirect cap, and optional
// blocking of private/loopback addresses for non-local deployments.
package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vijay120/duckling-1/errors"
)

// Client wraps http.Client with endpoint validation.
type Client struct {
	*http.Client
	allowedSchemes []string
	allowLoopback  bool
	maxRedirects   int
}

// Options customizes endpoint validation.
type Options struct {
	AllowedSchemes []string // Default: ["http", "https"]
	AllowLoopback  bool     // Permit localhost/private addresses
	MaxRedirects   int      // Default: 10
}

// New creates a validated HTTP client. Recognizers normally run on the
// local machine, so callers fetching from configured local endpoints
// should pass AllowLoopback: true.
func New(timeout time.Duration, opts Options) *Client {
	if opts.AllowedSchemes == nil {
		opts.AllowedSchemes = []string{"http", "https"}
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = 10
	}

	c := &Client{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		allowedSchemes: opts.AllowedSchemes,
		allowLoopback:  opts.AllowLoopback,
		maxRedirects:   opts.MaxRedirects,
	}

	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= c.maxRedirects {
			return errors.Newf("stopped after %d redirects", c.maxRedirects)
		}
		if err := c.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	return c
}

// NewLocal creates a client for recognizers on the local machine.
func NewLocal(timeout time.Duration) *Client {
	return New(timeout, Options{AllowLoopback: true})
}

func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, s := range c.allowedSchemes {
		if scheme == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	if u.User != nil {
		// Credential injection or URL confusion: http://evil.com@localhost/
		return errors.New("URL must not carry userinfo")
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errors.New("URL missing hostname")
	}

	if !c.allowLoopback {
		if isLocalhost(hostname) {
			return errors.New("localhost access blocked")
		}
		if ip := net.ParseIP(hostname); ip != nil && isRestrictedIP(ip) {
			return errors.Newf("restricted IP address blocked: %s", hostname)
		}
	}

	return nil
}

// ValidateURL validates a URL string before creating a request.
func (c *Client) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}
	if err := c.validateURL(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Do executes an HTTP request after validating its URL.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, errors.Wrap(err, "request blocked")
	}
	return c.Client.Do(req)
}

func isRestrictedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "localhost.localdomain" ||
		strings.HasSuffix(hostname, ".localhost")
}
