package attr

import (
	"net/netip"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/attrs/geom"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func mustURI(t *testing.T, s string) URI {
	t.Helper()
	u, err := ParseURI(s)
	require.NoError(t, err)
	return u
}

// ============================================================
// Strictness
// ============================================================

func TestGetters_Unassigned(t *testing.T) {
	for _, to := range Variants() {
		v := NewTyped(to)
		_, err := v.AsInteger()
		assert.ErrorIs(t, err, ErrNotInitialized, to.String())
		_, err = v.AsString()
		assert.ErrorIs(t, err, ErrNotInitialized, to.String())
		_, err = v.AsPoint2D()
		assert.ErrorIs(t, err, ErrNotInitialized, to.String())
		_, err = v.Raw()
		assert.ErrorIs(t, err, ErrNotInitialized, to.String())
	}
}

func TestAsInteger_RejectsStructuredVariants(t *testing.T) {
	values := []*Value{
		NewPoint2D(1, 2),
		NewPoint3D(1, 2, 3),
		NewPolyline2D(geom.Pt2(1, 2)),
		NewPolyline3D(geom.Pt3(1, 2, 3)),
		NewURL(mustURL(t, "http://example.com/42")),
		NewURI(mustURI(t, "urn:x:42")),
		NewUUID(uuid.New()),
		NewInetAddress(netip.MustParseAddr("10.0.0.42")),
		NewTypeRef(TypeRef{Name: "x.Y"}),
	}
	for _, v := range values {
		t.Run(v.Type().String(), func(t *testing.T) {
			_, err := v.AsInteger()
			assert.ErrorIs(t, err, ErrTypeMismatch)

			var ce *ConversionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, v.Type(), ce.From)
			assert.Equal(t, TypeInteger, ce.To)
			assert.Equal(t, "AsInteger", ce.Op)
		})
	}
}

// ============================================================
// Numbers
// ============================================================

func TestAsNumbers(t *testing.T) {
	day := time.UnixMilli(86_400_000)

	tests := []struct {
		name string
		v    *Value
		i    int64
		f    float64
		ts   Timestamp
	}{
		{"integer", NewInteger(-7), -7, -7, -7},
		{"real truncates", NewReal(3.75), 3, 3.75, 3},
		{"timestamp", NewTimestamp(1234), 1234, 1234, 1234},
		{"string", NewString(" 42 "), 42, 42, 42},
		{"date", NewDate(day), 86_400_000, 86_400_000, 86_400_000},
		{"true", NewBool(true), 1, 1, 1},
		{"false", NewBool(false), 0, 0, 0},
		{"object", NewWithRaw(TypeObject, uint16(9)), 9, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := tt.v.AsInteger()
			require.NoError(t, err)
			assert.Equal(t, tt.i, i)

			f, err := tt.v.AsReal()
			require.NoError(t, err)
			assert.Equal(t, tt.f, f)

			ts, err := tt.v.AsTimestamp()
			require.NoError(t, err)
			assert.Equal(t, tt.ts, ts)
		})
	}

	e := NewEnumeration(TypeBoolean)
	i, err := e.AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(TypeBoolean), i)
	_, err = e.AsTimestamp()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = NewString("4.5").AsInteger()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	f, err := NewString("4.5").AsReal()
	require.NoError(t, err)
	assert.Equal(t, 4.5, f)
}

func TestAsTimestamp_DateText(t *testing.T) {
	ts, err := NewString("2024-01-05 10:30:00").AsTimestamp()
	require.NoError(t, err)
	assert.Equal(t, TimestampOf(time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)), ts)
}

// ============================================================
// Text, booleans and dates
// ============================================================

func TestAsString_CanonicalForms(t *testing.T) {
	id := uuid.MustParse("2d9a5e3a-0f4b-4b44-8c1b-6a0a0e6f1f11")
	day := time.Date(2024, 1, 5, 13, 0, 0, 0, time.Local)

	tests := []struct {
		v    *Value
		want string
	}{
		{NewInteger(10), "10"},
		{NewReal(10), "10.0"},
		{NewReal(1.5e20), "1.5e+20"},
		{NewBool(true), "true"},
		{NewDate(day), "2024-01-05"},
		{NewTimestamp(TimestampOf(day)), "2024-01-05 13:00:00"},
		{NewPoint2D(1, 2), "1.0;2.0"},
		{NewPoint3D(1, 2, 3.5), "1.0;2.0;3.5"},
		{NewPolyline2D(geom.Pt2(1, 2), geom.Pt2(3, 4)), "1.0;2.0;3.0;4.0"},
		{NewEnumeration(TypeURI), "attr.Variant.URI"},
		{NewTypeRef(TypeRef{Name: "time.Time"}), "time.Time"},
		{NewUUID(id), "2d9a5e3a-0f4b-4b44-8c1b-6a0a0e6f1f11"},
		{NewURL(mustURL(t, "http://www.multiagent.fr")), "http://www.multiagent.fr"},
		{NewURI(mustURI(t, "urn:isbn:096139210x")), "urn:isbn:096139210x"},
		{NewInetAddress(netip.MustParseAddr("::1")), "::1"},
		{NewString("hello"), "hello"},
		{NewWithRaw(TypeObject, struct{ A int }{3}), "{3}"},
	}
	for _, tt := range tests {
		t.Run(tt.v.Type().String()+"/"+tt.want, func(t *testing.T) {
			got, err := tt.v.AsString()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want bool
	}{
		{"bool", NewBool(true), true},
		{"text", NewString("TrUe"), true},
		{"french no", NewString("non"), false},
		{"integer", NewInteger(2), true},
		{"zero", NewInteger(0), false},
		{"timestamp", NewTimestamp(1), true},
		{"tiny real", NewReal(1e-12), false},
		{"real", NewReal(-0.5), true},
		{"object", NewWithRaw(TypeObject, true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AsBool()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, v := range []*Value{NewString("maybe"), NewDate(time.Now()), NewPoint2D(0, 0)} {
		_, err := v.AsBool()
		assert.ErrorIs(t, err, ErrTypeMismatch, v.String())
	}
}

func TestAsDate(t *testing.T) {
	d, err := NewString("2024-01-05").AsDate()
	require.NoError(t, err)
	y, m, day := d.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.January, m)
	assert.Equal(t, 5, day)

	d, err = NewInteger(1500).AsDate()
	require.NoError(t, err)
	assert.True(t, time.UnixMilli(1500).Equal(d))

	_, err = NewString("not a date").AsDate()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewBool(true).AsDate()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// ============================================================
// Coordinates
// ============================================================

func TestAsPoints(t *testing.T) {
	p, err := NewInteger(5).AsPoint2D()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt2(5, 0), p)

	p, err = NewPoint3D(1, 2, 3).AsPoint2D()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt2(1, 2), p)

	p, err = NewString("7").AsPoint2D()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt2(7, 0), p)

	p3, err := NewPoint2D(1, 2).AsPoint3D()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt3(1, 2, 0), p3)

	p3, err = NewWithRaw(TypeObject, geom.Vector2D{X: 4, Y: 5}).AsPoint3D()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt3(4, 5, 0), p3)

	_, err = NewPolyline2D(geom.Pt2(1, 2)).AsPoint2D()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewBool(true).AsPoint3D()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAsPolylines(t *testing.T) {
	line, err := NewPolyline3D(geom.Pt3(1, 2, 3), geom.Pt3(4, 5, 6)).AsPolyline2D()
	require.NoError(t, err)
	if diff := cmp.Diff([]geom.Point2D{{X: 1, Y: 2}, {X: 4, Y: 5}}, line); diff != "" {
		t.Errorf("projected polyline (-want +got):\n%s", diff)
	}

	line3, err := NewString("1;2;3;4").AsPolyline3D()
	require.NoError(t, err)
	if diff := cmp.Diff([]geom.Point3D{{X: 1, Y: 2, Z: 3}, {X: 4}}, line3); diff != "" {
		t.Errorf("padded polyline (-want +got):\n%s", diff)
	}

	line, err = NewPoint2D(1, 2).AsPolyline2D()
	require.NoError(t, err)
	assert.Equal(t, []geom.Point2D{{X: 1, Y: 2}}, line)

	// getters hand out copies
	v := NewPolyline2D(geom.Pt2(1, 2))
	line, _ = v.AsPolyline2D()
	line[0].X = 99
	again, _ := v.AsPolyline2D()
	assert.Equal(t, 1.0, again[0].X)

	_, err = NewInteger(3).AsPolyline2D()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// ============================================================
// Identifiers, locators and addresses
// ============================================================

func TestAsUUID(t *testing.T) {
	id := uuid.MustParse("2d9a5e3a-0f4b-4b44-8c1b-6a0a0e6f1f11")

	got, err := NewString("uuid:" + id.String()).AsUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = NewURI(mustURI(t, "uuid:"+id.String())).AsUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// anything else maps to a stable name-based id
	a, err := NewInteger(42).AsUUID()
	require.NoError(t, err)
	b, err := NewString("42").AsUUID()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, nameUUID("42"), a)
}

func TestAsURL(t *testing.T) {
	got, err := NewString("http://www.multiagent.fr").AsURL()
	require.NoError(t, err)
	assert.Equal(t, "www.multiagent.fr", got.Host)

	got, err = NewInetAddress(netip.MustParseAddr("10.0.0.1")).AsURL()
	require.NoError(t, err)
	assert.Equal(t, "file://10.0.0.1", got.String())

	got, err = NewURI(mustURI(t, "https://a.b/c")).AsURL()
	require.NoError(t, err)
	assert.Equal(t, "https://a.b/c", got.String())

	src := mustURL(t, "http://a.b/")
	v := NewURL(src)
	got, _ = v.AsURL()
	got.Path = "/changed"
	again, _ := v.AsURL()
	assert.Equal(t, "/", again.Path, "getters hand out copies")

	_, err = NewString("urn:isbn:1").AsURL()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewUUID(uuid.New()).AsURL()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAsURI(t *testing.T) {
	id := uuid.MustParse("2d9a5e3a-0f4b-4b44-8c1b-6a0a0e6f1f11")

	got, err := NewUUID(id).AsURI()
	require.NoError(t, err)
	assert.Equal(t, "uuid:"+id.String(), got.String())

	got, err = NewString("urn:isbn:096139210x").AsURI()
	require.NoError(t, err)
	assert.Equal(t, "urn", got.Scheme())

	got, err = NewURL(mustURL(t, "ftp://x.y/z")).AsURI()
	require.NoError(t, err)
	assert.Equal(t, "x.y", got.Host())

	_, err = NewString("no scheme here").AsURI()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewInteger(1).AsURI()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAsInetAddress(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"address", NewInetAddress(netip.MustParseAddr("10.1.1.1")), "10.1.1.1"},
		{"text", NewString("192.168.0.1"), "192.168.0.1"},
		{"localhost", NewString("localhost"), "127.0.0.1"},
		{"url host", NewURL(mustURL(t, "http://10.2.2.2:8080/x")), "10.2.2.2"},
		{"uri host", NewURI(mustURI(t, "file://[::1]/")), "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AsInetAddress()
			require.NoError(t, err)
			assert.Equal(t, netip.MustParseAddr(tt.want), got)
		})
	}

	_, err := NewURL(mustURL(t, "http://example.com/")).AsInetAddress()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewInteger(1).AsInetAddress()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// ============================================================
// Enumerations, type references and opaque payloads
// ============================================================

func TestAsEnumeration(t *testing.T) {
	got, err := NewString("attr.Variant.INTEGER").AsEnumeration()
	require.NoError(t, err)
	assert.Equal(t, TypeInteger, got)

	got, err = NewWithRaw(TypeObject, TypeReal).AsEnumeration()
	require.NoError(t, err)
	assert.Equal(t, TypeReal, got)

	// typed null
	v := NewTyped(TypeEnumeration)
	v.Cast(TypeEnumeration)
	require.True(t, v.IsNull())
	got, err = v.AsEnumeration()
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = NewTyped(TypeEnumeration).AsEnumeration()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = NewInteger(3).AsEnumeration()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// a null of another variant is not an enumeration
	u := New()
	u.SetPoint2D(nil)
	require.True(t, u.IsNull())
	_, err = u.AsEnumeration()
	assert.Error(t, err)
}

func TestAsTypeRef(t *testing.T) {
	got, err := NewString("time.Time").AsTypeRef()
	require.NoError(t, err)
	assert.Equal(t, TypeRef{Name: "time.Time"}, got)

	got, err = NewWithRaw(TypeObject, reflect.TypeOf(geom.Point2D{})).AsTypeRef()
	require.NoError(t, err)
	assert.Equal(t, "geom.Point2D", got.Name)

	_, err = NewString("no.Such").AsTypeRef()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAsObject(t *testing.T) {
	_, err := NewInteger(1).AsObject()
	assert.ErrorIs(t, err, ErrInvalidType)
	_, err = NewString("x").AsObject()
	assert.ErrorIs(t, err, ErrInvalidType)

	got, err := NewPoint2D(1, 2).AsObject()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt2(1, 2), got)

	got, err = NewTyped(TypeURL).AsObject()
	require.NoError(t, err)
	assert.Nil(t, got)
}
