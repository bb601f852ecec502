package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	PathLogin    = "/api/auth/login"
	PathProducts = "/api/products"
)

// CredentialMode decides whether ambient credentials travel with a request.
type CredentialMode int

const (
	// CredentialsOmit sends no cookies at all (login).
	CredentialsOmit CredentialMode = iota
	// CredentialsInclude sends the cookie jar plus the stored session token.
	CredentialsInclude
)

func (m CredentialMode) String() string {
	if m == CredentialsInclude {
		return "include"
	}
	return "omit"
}

type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any // JSON encoded when non-nil
	Credentials CredentialMode
}

type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Gateway is the transport seen by the submission controller. A non-2xx
// reply comes back as *RejectedError together with the response.
type Gateway interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// CredentialSource yields the session token attached in CredentialsInclude mode.
type CredentialSource interface {
	Credential(ctx context.Context) (string, bool)
}

// Probe checks authentication the way the web client did: list one product
// with ambient credentials and look only at the ok bit.
func Probe(ctx context.Context, gw Gateway, limit int) bool {
	if limit <= 0 {
		limit = 1
	}
	resp, err := gw.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        PathProducts,
		Query:       url.Values{"limit": []string{strconv.Itoa(limit)}},
		Credentials: CredentialsInclude,
	})
	return err == nil && resp.OK()
}
