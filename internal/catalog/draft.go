package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrUnknownField = errors.New("unknown field")

// Value is a normalized field value: plain text, or an ordered list for
// multi-value fields.
type Value struct {
	text   string
	list   []string
	isList bool
}

func Text(s string) Value { return Value{text: s} }

func List(items []string) Value {
	return Value{list: slices.Clone(items), isList: true}
}

func (v Value) IsList() bool { return v.isList }

// String returns the text form; lists are joined back for display.
func (v Value) String() string {
	if v.isList {
		return JoinList(v.list)
	}
	return v.text
}

// Strings returns the list form; text is split the same way the normalizer does.
func (v Value) Strings() []string {
	if v.isList {
		return slices.Clone(v.list)
	}
	return SplitList(v.text)
}

// Record is implemented by every draft variant. With must not modify the
// receiver: it returns a copy with exactly one field replaced.
type Record[R any] interface {
	With(field string, v Value) (R, error)
	Clone() R
}

// Draft holds the in-progress record of one form instance.
type Draft[R Record[R]] struct {
	mu      sync.Mutex
	current R
	zero    func() R
}

func NewDraft[R Record[R]](zero func() R) *Draft[R] {
	return &Draft[R]{current: zero(), zero: zero}
}

func (d *Draft[R]) Get() R {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current.Clone()
}

func (d *Draft[R]) Set(field string, v Value) (R, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := d.current.With(field, v)
	if err != nil {
		return d.current.Clone(), err
	}
	d.current = next
	return next.Clone(), nil
}

func (d *Draft[R]) Reset() R {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = d.zero()
	return d.current.Clone()
}

func (c Credential) With(field string, v Value) (Credential, error) {
	switch field {
	case FieldEmail, FieldIdentifier:
		c.Identifier = v.String()
	case FieldPassword, FieldSecret:
		c.Secret = v.String()
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return c, nil
}

func (c Credential) Clone() Credential { return c }

func (p Product) With(field string, v Value) (Product, error) {
	out := p.Clone()
	switch field {
	case FieldName:
		out.Name = v.String()
	case FieldSKU:
		out.SKU = v.String()
	case FieldDescription:
		out.Description = v.String()
	case FieldCategory:
		out.Category = v.String()
	case FieldPrice:
		out.Price = v.String()
	case FieldStock:
		out.Stock = v.String()
	case FieldTags:
		out.Tags = v.Strings()
	case FieldImages:
		out.Images = v.Strings()
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

func (p Product) Clone() Product {
	p.Tags = slices.Clone(p.Tags)
	p.Images = slices.Clone(p.Images)
	return p
}
