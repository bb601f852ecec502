package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/gateway"
	"github.com/ariefcatur/go-catalog-client/internal/session"
)

const (
	MsgLoginOK       = "Login successful!"
	MsgLoginFailed   = "Invalid credentials"
	MsgProductOK     = "Product created successfully!"
	MsgProductFailed = "Failed to create product"
	HomeDestination  = "/"
)

// LoginFlow posts the credential without ambient cookies and, on success,
// hands the access token to the session.
type LoginFlow struct {
	Auth *session.Auth
}

func (LoginFlow) Name() string { return catalog.FlowLogin }
func (LoginFlow) Zero() catalog.Credential { return catalog.NewCredential() }
func (LoginFlow) FailureMessage() string { return MsgLoginFailed }
func (LoginFlow) Destination() string { return HomeDestination }

func (LoginFlow) Build(d catalog.Credential) (gateway.Request, error) {
	body, err := d.Payload()
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{
		Method:      http.MethodPost,
		Path:        gateway.PathLogin,
		Body:        body,
		Credentials: gateway.CredentialsOmit,
	}, nil
}

func (f LoginFlow) Succeed(ctx context.Context, resp *gateway.Response) (string, error) {
	var out catalog.LoginResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", malformed(err)
	}
	if out.Token.AccessToken == "" {
		return "", malformed(errors.New("login response has no token.accessToken"))
	}
	if err := f.Auth.Issue(ctx, session.Token(out.Token.AccessToken)); err != nil {
		return "", sessionFailure(err)
	}
	return MsgLoginOK, nil
}

// ProductFlow posts a product with ambient credentials.
type ProductFlow struct{}

func (ProductFlow) Name() string { return catalog.FlowCreateProduct }
func (ProductFlow) Zero() catalog.Product { return catalog.NewProduct() }
func (ProductFlow) FailureMessage() string { return MsgProductFailed }
func (ProductFlow) Destination() string { return "" }

func (ProductFlow) Build(d catalog.Product) (gateway.Request, error) {
	body, err := d.Payload()
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{
		Method:      http.MethodPost,
		Path:        gateway.PathProducts,
		Body:        body,
		Credentials: gateway.CredentialsInclude,
	}, nil
}

// Succeed only checks that the reply parses; its content is not used.
func (ProductFlow) Succeed(_ context.Context, resp *gateway.Response) (string, error) {
	if len(resp.Body) > 0 && !json.Valid(resp.Body) {
		return "", malformed(errors.New("create product response is not JSON"))
	}
	return MsgProductOK, nil
}

func NewLogin(auth *session.Auth, deps Deps) *Controller[catalog.Credential] {
	return New[catalog.Credential](LoginFlow{Auth: auth}, deps)
}

func NewCreateProduct(deps Deps) *Controller[catalog.Product] {
	return New[catalog.Product](ProductFlow{}, deps)
}
