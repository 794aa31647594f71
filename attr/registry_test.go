package attr

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/attrs/geom"
)

type shape int

const (
	circle shape = iota
	square
)

func (s shape) EnumType() string { return "shapes.Kind" }
func (s shape) EnumName() string { return [...]string{"CIRCLE", "SQUARE"}[s] }
func (s shape) Ordinal() int     { return int(s) }

func TestDefaultRegistry_KnowsOwnTypes(t *testing.T) {
	r := DefaultRegistry()

	e, ok := r.ResolveEnum("attr.Variant", "POINT2D")
	require.True(t, ok)
	assert.Equal(t, TypePoint2D, e)

	e, ok = r.ResolveEnum("attr.Variant", "point2d")
	require.True(t, ok, "constant names fall back to case-insensitive match")
	assert.Equal(t, TypePoint2D, e)

	for _, name := range []string{"attr.Value", "attr.Attribute", "time.Time", "uuid.UUID", "netip.Addr", "geom.Point3D"} {
		_, ok := r.ResolveType(name)
		assert.True(t, ok, name)
	}
	assert.Contains(t, r.EnumTypes(), "attr.Variant")
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.RegisterEnum("colors.Primary", "RED", "GREEN", "BLUE")
	r.RegisterEnumValues(square, circle)
	ref := r.RegisterGoType(reflect.TypeOf(geom.Vector2D{}))

	e, ok := r.ResolveEnum("colors.Primary", "BLUE")
	require.True(t, ok)
	assert.Equal(t, EnumConstant{Type: "colors.Primary", Name: "BLUE", Index: 2}, e)
	assert.Equal(t, "colors.Primary.BLUE", enumText(e))

	e, ok = r.ResolveEnum("shapes.Kind", "SQUARE")
	require.True(t, ok)
	assert.Equal(t, square, e)

	_, ok = r.ResolveEnum("shapes.Kind", "TRIANGLE")
	assert.False(t, ok)
	_, ok = r.ResolveEnum("shapes.Other", "CIRCLE")
	assert.False(t, ok)

	assert.Equal(t, TypeRef{Name: "geom.Vector2D"}, ref)
	got, ok := r.ResolveType("geom.Vector2D")
	require.True(t, ok)
	assert.Equal(t, ref, got)

	assert.Equal(t, []string{"colors.Primary", "shapes.Kind"}, r.EnumTypes())
	assert.Equal(t, []string{"geom.Vector2D"}, r.TypeNames())
}

func TestRegistry_Merge(t *testing.T) {
	a := NewRegistry()
	a.RegisterType("x.A")
	b := NewRegistry()
	b.RegisterEnum("x.E", "ONE")
	b.RegisterType("x.B")

	a.Merge(b)
	a.Merge(nil)
	a.Merge(a)

	assert.Equal(t, []string{"x.A", "x.B"}, a.TypeNames())
	_, ok := a.ResolveEnum("x.E", "ONE")
	assert.True(t, ok)
}

// ============================================================
// YAML registry files
// ============================================================

func TestLoadRegistry(t *testing.T) {
	in := `
enums:
  shapes.Kind: [CIRCLE, SQUARE]
  colors.Primary:
    - RED
    - GREEN
types: [shapes.Polygon, shapes.Circle]
`
	r, err := LoadRegistry(strings.NewReader(in))
	require.NoError(t, err)

	e, ok := r.ResolveEnum("shapes.Kind", "SQUARE")
	require.True(t, ok)
	assert.Equal(t, 1, e.Ordinal())

	_, ok = r.ResolveType("shapes.Polygon")
	assert.True(t, ok)
	assert.Equal(t, []string{"colors.Primary", "shapes.Kind"}, r.EnumTypes())
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown field", "enumz: {}\n"},
		{"empty type name", "types: ['']\n"},
		{"empty enum name", "enums:\n  '': [A]\n"},
		{"not a mapping", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestRegistry_LoadIsAtomic(t *testing.T) {
	r := NewRegistry()
	err := r.Load(strings.NewReader("enums:\n  shapes.Kind: [CIRCLE]\ntypes: [shapes.Polygon, '']\n"))
	require.Error(t, err)

	assert.Empty(t, r.EnumTypes())
	assert.Empty(t, r.TypeNames())
	_, ok := r.ResolveEnum("shapes.Kind", "CIRCLE")
	assert.False(t, ok)
}

func TestLoadRegistry_Empty(t *testing.T) {
	r, err := LoadRegistry(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, r.TypeNames())
}

func TestResolver_PerValue(t *testing.T) {
	r := NewRegistry()
	r.RegisterEnumValues(circle, square)
	r.RegisterType("shapes.Polygon")

	v := NewString("shapes.Kind.CIRCLE").WithResolver(r)
	e, err := v.AsEnumeration()
	require.NoError(t, err)
	assert.Equal(t, circle, e)

	// the default registry does not know the host enumeration
	_, err = NewString("shapes.Kind.CIRCLE").AsEnumeration()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	ref, err := NewString("shapes.Polygon").WithResolver(r).AsTypeRef()
	require.NoError(t, err)
	assert.Equal(t, "shapes.Polygon", ref.Name)
}
