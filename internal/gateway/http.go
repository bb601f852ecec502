package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 4 << 20

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	CookieName string
	Creds      CredentialSource
	Logger     zerolog.Logger
	// Transport is used by both clients when set (tests).
	Transport http.RoundTripper
}

// HTTPGateway talks JSON over net/http. It keeps two clients: one with a
// cookie jar for CredentialsInclude and one without for CredentialsOmit.
type HTTPGateway struct {
	base       *url.URL
	withJar    *http.Client
	bare       *http.Client
	cookieName string
	creds      CredentialSource
	log        zerolog.Logger
}

func NewHTTPGateway(o Options) (*HTTPGateway, error) {
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", o.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if o.CookieName == "" {
		o.CookieName = "accessToken"
	}
	return &HTTPGateway{
		base:       base,
		withJar:    &http.Client{Timeout: o.Timeout, Jar: jar, Transport: o.Transport},
		bare:       &http.Client{Timeout: o.Timeout, Transport: o.Transport},
		cookieName: o.CookieName,
		creds:      o.Creds,
		log:        o.Logger,
	}, nil
}

func (g *HTTPGateway) Do(ctx context.Context, r Request) (*Response, error) {
	u := *g.base
	u.Path = g.base.Path + r.Path
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := g.bare
	if r.Credentials == CredentialsInclude {
		client = g.withJar
		if g.creds != nil {
			if tok, ok := g.creds.Credential(ctx); ok {
				c := &http.Cookie{Name: g.cookieName, Value: tok}
				if err := c.Valid(); err != nil {
					// AddCookie would silently strip the bad bytes
					g.log.Warn().Err(err).Str("cookie", g.cookieName).Msg("stored token is not a valid cookie value, sending without it")
				} else {
					req.AddCookie(c)
				}
			}
		}
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: r.Method + " " + r.Path, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: "read " + r.Path, Err: err}
	}

	g.log.Debug().
		Str("method", r.Method).
		Str("path", r.Path).
		Str("credentials", r.Credentials.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("gateway call")

	out := &Response{StatusCode: resp.StatusCode, Body: b}
	if !out.OK() {
		return out, &RejectedError{StatusCode: resp.StatusCode, Body: b}
	}
	return out, nil
}
