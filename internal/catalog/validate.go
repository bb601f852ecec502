package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError means the draft cannot be submitted. It is raised before
// any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}

func (c Credential) Payload() (LoginRequest, error) {
	if err := required(FieldEmail, c.Identifier); err != nil {
		return LoginRequest{}, err
	}
	if err := required(FieldPassword, c.Secret); err != nil {
		return LoginRequest{}, err
	}
	return LoginRequest{Email: c.Identifier, Password: c.Secret}, nil
}

// Payload validates the draft and converts it to the wire shape. Lists
// never touched by the user are sent as [] rather than null.
func (p Product) Payload() (ProductPayload, error) {
	for _, f := range []struct{ name, v string }{
		{FieldName, p.Name},
		{FieldSKU, p.SKU},
		{FieldDescription, p.Description},
		{FieldCategory, p.Category},
		{FieldPrice, p.Price},
		{FieldStock, p.Stock},
	} {
		if err := required(f.name, f.v); err != nil {
			return ProductPayload{}, err
		}
	}

	price, err := ParsePrice(p.Price)
	if err != nil {
		return ProductPayload{}, err
	}
	stock, err := ParseStock(p.Stock)
	if err != nil {
		return ProductPayload{}, err
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductPayload{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Category:    p.Category,
		Price:       price,
		Tags:        append([]string{}, tags...),
		Stock:       stock,
		Images:      append([]string{}, images...),
	}, nil
}

func ParsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: FieldPrice, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if v < 0 {
		return 0, &ValidationError{Field: FieldPrice, Reason: "must be >= 0"}
	}
	return v, nil
}

func ParseStock(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: FieldStock, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	if v < 0 {
		return 0, &ValidationError{Field: FieldStock, Reason: "must be >= 0"}
	}
	return v, nil
}
