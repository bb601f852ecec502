package catalog

import (
	"fmt"
	"strings"
)

const listSeparator = ","

// SplitList turns comma separated input into an ordered list. Segments are
// trimmed but never dropped, so "" yields [""] and "a,,b" keeps the empty tag.
func SplitList(raw string) []string {
	parts := strings.Split(raw, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// JoinList is the display inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// Normalize maps one raw input event to the value stored in the draft.
// Numeric fields keep their raw text; they are parsed in Payload.
func Normalize(field, raw string) (Value, error) {
	switch field {
	case FieldName, FieldSKU, FieldDescription, FieldCategory,
		FieldEmail, FieldPassword, FieldIdentifier, FieldSecret,
		FieldPrice, FieldStock:
		return Text(raw), nil
	case FieldTags, FieldImages:
		return List(SplitList(raw)), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// NormalizeProduct re-applies field normalization to a whole record.
func NormalizeProduct(p Product) Product {
	out := p.Clone()
	out.Tags = renormalize(p.Tags)
	out.Images = renormalize(p.Images)
	return out
}

func renormalize(items []string) []string {
	if items == nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, strings.TrimSpace(it))
	}
	return out
}
