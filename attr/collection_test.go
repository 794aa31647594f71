package attr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Neumenon/attrs/geom"
)

type eventLog struct {
	events []Event
}

func (l *eventLog) listen(e Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	var out []EventKind
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestCollection(t *testing.T) (*Collection, *eventLog) {
	t.Helper()
	log := &eventLog{}
	c := NewCollection(WithListener(log.listen))
	return c, log
}

// ============================================================
// Writes
// ============================================================

func TestCollection_Set(t *testing.T) {
	c, log := newTestCollection(t)

	a, err := c.Set("Width", 10)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, TypeInteger, a.Type())

	// same payload and variant: nothing happens
	a, err = c.Set("width", int64(10))
	require.NoError(t, err)
	assert.Nil(t, a)

	// same number as another variant is a change
	a, err = c.Set("WIDTH", 10.0)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Width", a.Name(), "the first spelling is kept")

	assert.Equal(t, []EventKind{EventAdded, EventChanged}, log.kinds())
	changed := log.events[1]
	assert.Equal(t, TypeInteger, changed.Old.Type())
	assert.Equal(t, TypeReal, changed.New.Type())

	_, err = c.Set("", 1)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
	_, err = c.SetAttribute(nil)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestCollection_SetAttributeCopies(t *testing.T) {
	c, _ := newTestCollection(t)
	src := NewAttributeFrom("path", NewPolyline2D(geom.Pt2(1, 1)))
	_, err := c.SetAttribute(src)
	require.NoError(t, err)

	src.AddToPolyline2D(geom.Pt2(2, 2))
	v, ok := c.Get("PATH")
	require.True(t, ok)
	line, _ := v.AsPolyline2D()
	assert.Len(t, line, 1)

	// reads are copies too
	v.SetInteger(1)
	again, _ := c.Get("path")
	assert.Equal(t, TypePolyline2D, again.Type())
}

func TestCollection_SetAttributeType(t *testing.T) {
	c, log := newTestCollection(t)
	_, _ = c.Set("n", "42")

	a := c.SetAttributeType("N", TypeInteger)
	require.NotNil(t, a)
	n, err := a.AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	assert.Nil(t, c.SetAttributeType("n", TypeInteger), "already of that variant")
	assert.Nil(t, c.SetAttributeType("missing", TypeInteger))

	a = c.SetAttributeType("n", TypePoint2D)
	require.NotNil(t, a)
	p, _ := a.AsPoint2D()
	assert.Equal(t, geom.Pt2(42, 0), p)

	assert.Equal(t, []EventKind{EventAdded, EventChanged, EventChanged}, log.kinds())
}

func TestCollection_Remove(t *testing.T) {
	c, log := newTestCollection(t)
	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)

	assert.True(t, c.Remove("A"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())

	assert.True(t, c.RemoveAll())
	assert.False(t, c.RemoveAll())
	assert.Equal(t, 0, c.Len())

	assert.Equal(t, []EventKind{EventAdded, EventAdded, EventRemoved, EventCleared}, log.kinds())
}

func TestCollection_Rename(t *testing.T) {
	c, log := newTestCollection(t)
	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)

	assert.False(t, c.Rename("a", "b", false), "target exists")
	assert.False(t, c.Rename("missing", "c", true))
	assert.False(t, c.Rename("a", "a", true))

	assert.True(t, c.Rename("a", "b", true))
	assert.False(t, c.Has("a"))
	v, _ := c.Get("b")
	n, _ := v.AsInteger()
	assert.Equal(t, int64(1), n)

	assert.True(t, c.Rename("b", "B", false), "case-only rename")
	assert.Equal(t, []string{"B"}, c.Names())

	assert.Equal(t, []EventKind{EventAdded, EventAdded, EventRemoved, EventRenamed, EventRenamed}, log.kinds())
	assert.Equal(t, "a", log.events[3].OldName)
	assert.Equal(t, "b", log.events[3].Name)
}

func TestCollection_AddAllSetAll(t *testing.T) {
	c, log := newTestCollection(t)
	require.NoError(t, c.AddAll(map[string]any{"a": 1, "b": "two"}))
	require.NoError(t, c.AddAll(map[string]any{"c": true}))
	assert.Equal(t, []string{"a", "b", "c"}, c.Names())

	require.NoError(t, c.SetAll(map[string]any{"b": "two", "d": 4.5}))
	assert.Equal(t, []string{"b", "d"}, c.Names())

	assert.Equal(t, []EventKind{
		EventAdded, EventAdded, EventAdded, // a b c
		EventRemoved, EventRemoved, // a c
		EventAdded, // d; b is unchanged
	}, log.kinds())

	assert.ErrorIs(t, c.SetAll(map[string]any{"": 1}), ErrInvalidAttribute)
}

// ============================================================
// Reads
// ============================================================

func TestCollection_Reads(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.AddAll(map[string]any{
		"Zeta":  1,
		"alpha": geom.Pt2(1, 2),
		"beta":  2,
	}))

	assert.True(t, c.Has("ALPHA"))
	assert.False(t, c.Has("gamma"))
	assert.Equal(t, []string{"alpha", "beta", "Zeta"}, c.Names())

	attrs := c.Attributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, "alpha", attrs[0].Name())

	byType := c.AttributesByType()
	assert.Len(t, byType[TypeInteger], 2)
	assert.Len(t, byType[TypePoint2D], 1)

	a, ok := c.Attribute("zeta")
	require.True(t, ok)
	assert.Equal(t, "Zeta", a.Name())
	_, ok = c.Attribute("nope")
	assert.False(t, ok)

	if diff := cmp.Diff(map[string]any{"Zeta": int64(1), "alpha": geom.Pt2(1, 2), "beta": int64(2)}, c.ToMap()); diff != "" {
		t.Errorf("ToMap mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_GetOrDefault(t *testing.T) {
	c := NewCollection()
	_, _ = c.Set("n", "42")

	v := c.GetOrDefault("n", NewInteger(0))
	assert.Equal(t, TypeInteger, v.Type())
	n, _ := v.AsInteger()
	assert.Equal(t, int64(42), n)

	def := NewReal(1.5)
	assert.Same(t, def, c.GetOrDefault("missing", def))

	v = c.GetOrDefault("n", nil)
	assert.Equal(t, TypeString, v.Type())
}

func TestCollection_Clone(t *testing.T) {
	c, log := newTestCollection(t)
	_, _ = c.Set("a", 1)

	cp := c.Clone()
	_, _ = cp.Set("a", 2)
	_, _ = cp.Set("b", 3)

	v, _ := c.Get("a")
	n, _ := v.AsInteger()
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, log.events, 1, "clones do not share listeners")
	assert.True(t, cp.Flush())
}

func TestCollection_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewCollection(WithLogger(zap.New(core)))

	_, _ = c.Set("a", 1)
	c.Remove("a")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "attribute added", entries[0].Message)
	assert.Equal(t, "attribute removed", entries[1].Message)
	assert.Equal(t, "a", entries[1].ContextMap()["name"])
}
