package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/attrs/geom"
)

func TestNewAttribute(t *testing.T) {
	a := NewAttribute("height")
	assert.Equal(t, "height", a.Name())
	assert.Equal(t, TypeObject, a.Type())
	assert.False(t, a.IsAssigned())

	b := NewNamedAttribute("height", 12.5)
	assert.Equal(t, TypeReal, b.Type())
	f, err := b.AsReal()
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	src := NewPolyline2D(geom.Pt2(1, 2))
	c := NewAttributeFrom("path", src)
	src.AddToPolyline2D(geom.Pt2(3, 4))
	line, _ := c.AsPolyline2D()
	assert.Len(t, line, 1, "NewAttributeFrom copies the value")
}

func TestAttribute_SetAttribute(t *testing.T) {
	a := NewNamedAttribute("a", 1)
	b := NewNamedAttribute("b", "text")

	require.NoError(t, a.SetAttribute(b))
	assert.Equal(t, "b", a.Name())
	assert.Equal(t, TypeString, a.Type())
	assert.True(t, a.Equal(b))

	assert.ErrorIs(t, a.SetAttribute(nil), ErrInvalidAttribute)
}

func TestAttribute_EqualAndHash(t *testing.T) {
	a := NewNamedAttribute("Speed", 3)
	b := NewNamedAttribute("speed", 3.0)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := NewNamedAttribute("speed", 4)
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var nilAttr *Attribute
	assert.True(t, nilAttr.Equal(nil))
}

func TestAttribute_SetName(t *testing.T) {
	a := NewNamedAttribute("x", true)
	a.SetName("")
	assert.Equal(t, "", a.Name())
	assert.Equal(t, "=[true:BOOLEAN]", a.String())
}

func TestAttribute_Clone(t *testing.T) {
	a := NewAttributeFrom("p", NewPolyline3D(geom.Pt3(1, 2, 3)))
	c := a.Clone()
	a.AddToPolyline3D(geom.Pt3(4, 5, 6))
	a.SetName("q")

	assert.Equal(t, "p", c.Name())
	line, _ := c.AsPolyline3D()
	assert.Len(t, line, 1)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "[10:INTEGER]", NewInteger(10).String())
	assert.Equal(t, "[???:URL]", NewTyped(TypeURL).String())
	assert.Equal(t, "<nil>", (*Value)(nil).String())
}

func TestValue_ZeroValue(t *testing.T) {
	var v Value
	assert.Equal(t, TypeObject, v.Type())
	assert.False(t, v.IsAssigned())

	v.SetToDefault()
	assert.Equal(t, TypeObject, v.Type())
	assert.True(t, v.IsNull())

	var a Attribute
	assert.Equal(t, TypeObject, a.Type())
	assert.Equal(t, TypeEnumeration, NewTyped(TypeEnumeration).Type(), "ordinal 0 stays ENUMERATION")
	assert.Equal(t, 0, NewTyped(TypeEnumeration).Type().Ordinal())
}
