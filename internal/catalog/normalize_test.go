package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b , c", []string{"a", "b", "c"}},
		{"", []string{""}},
		{"solo", []string{"solo"}},
		{"a,,b", []string{"a", "", "b"}},
		{" red ,red", []string{"red", "red"}},
		{"a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitList(tt.in)); diff != "" {
				t.Fatalf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, items := range [][]string{
		{"a", "b", "c"},
		{""},
		{"x", "", "y"},
	} {
		require.Equal(t, items, SplitList(JoinList(items)))
	}
}

func TestNormalize(t *testing.T) {
	v, err := Normalize(FieldName, "  Mug ")
	require.NoError(t, err)
	require.False(t, v.IsList())
	require.Equal(t, "  Mug ", v.String())

	v, err = Normalize(FieldPrice, "12.")
	require.NoError(t, err)
	require.Equal(t, "12.", v.String())

	v, err = Normalize(FieldTags, "a, b")
	require.NoError(t, err)
	require.True(t, v.IsList())
	require.Equal(t, []string{"a", "b"}, v.Strings())
	require.Equal(t, "a,b", v.String())

	v, err = Normalize(FieldImages, "https://x/1.png")
	require.NoError(t, err)
	require.Equal(t, []string{"https://x/1.png"}, v.Strings())

	for _, f := range []string{FieldEmail, FieldPassword, FieldIdentifier, FieldSecret} {
		v, err = Normalize(f, " raw ")
		require.NoError(t, err, f)
		require.Equal(t, " raw ", v.String())
	}

	_, err = Normalize("colour", "red")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestNormalizeProductIdempotent(t *testing.T) {
	p := Product{Name: "Mug", Tags: []string{" a", "b "}, Images: nil}

	once := NormalizeProduct(p)
	twice := NormalizeProduct(once)

	require.Equal(t, []string{"a", "b"}, once.Tags)
	require.Equal(t, []string{}, once.Images)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second pass changed the record (-once +twice):\n%s", diff)
	}
	// input untouched
	require.Equal(t, []string{" a", "b "}, p.Tags)
}
