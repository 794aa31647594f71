package attr

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Names and ordinals
// ============================================================

func TestVariants_CatalogOrder(t *testing.T) {
	want := []string{
		"ENUMERATION", "TYPE_REF", "UUID", "INTEGER", "REAL", "DATE", "BOOLEAN",
		"INET_ADDRESS", "URL", "URI", "TIMESTAMP", "POINT3D", "POINT2D",
		"POLYLINE3D", "POLYLINE2D", "STRING", "OBJECT",
	}
	var got []string
	for _, v := range Variants() {
		got = append(got, v.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"INTEGER", TypeInteger},
		{"integer", TypeInteger},
		{" Inet_Address ", TypeInetAddress},
		{"point3d", TypePoint3D},
		{"TYPE_REF", TypeTypeRef},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseVariant("COMPLEX")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestVariantFromInt(t *testing.T) {
	assert.Equal(t, TypeEnumeration, VariantFromInt(0))
	assert.Equal(t, TypeReal, VariantFromInt(4))
	assert.Equal(t, TypeObject, VariantFromInt(-1))
	assert.Equal(t, TypeObject, VariantFromInt(numVariants))
	assert.Equal(t, "Variant(42)", Variant(42).String())
	assert.False(t, Variant(42).Valid())
}

func TestVariant_JSONText(t *testing.T) {
	data, err := json.Marshal(map[string]Variant{"t": TypePoint2D})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"POINT2D"}`, string(data))

	var back map[string]Variant
	require.NoError(t, json.Unmarshal([]byte(`{"t":"url"}`), &back))
	assert.Equal(t, TypeURL, back["t"])

	assert.Error(t, json.Unmarshal([]byte(`{"t":"nope"}`), &back))

	_, err = Variant(99).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestVariant_IsEnumerated(t *testing.T) {
	var e Enumerated = TypeDate
	assert.Equal(t, "attr.Variant", e.EnumType())
	assert.Equal(t, "DATE", e.EnumName())
	assert.Equal(t, 5, e.Ordinal())
}
