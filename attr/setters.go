package attr

import (
	"net/netip"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// Setters never fail. Each one replaces the variant and the payload. An
// absent payload leaves a null-allowing variant unassigned and any other
// variant holding a typed null.

// SetInteger stores an INTEGER.
func (v *Value) SetInteger(n int64) {
	v.put(TypeInteger, n)
}

// SetReal stores a REAL.
func (v *Value) SetReal(f float64) {
	v.put(TypeReal, f)
}

// SetString stores a STRING.
func (v *Value) SetString(s string) {
	v.put(TypeString, s)
}

// SetBool stores a BOOLEAN.
func (v *Value) SetBool(b bool) {
	v.put(TypeBoolean, b)
}

// SetDate stores a DATE.
func (v *Value) SetDate(t time.Time) {
	v.put(TypeDate, t)
}

// SetTimestamp stores a TIMESTAMP.
func (v *Value) SetTimestamp(ts Timestamp) {
	v.put(TypeTimestamp, ts)
}

// SetPoint2D stores a POINT2D copied from any planar tuple.
func (v *Value) SetPoint2D(p geom.Tuple2D) {
	if p == nil {
		v.put(TypePoint2D, nil)
		return
	}
	v.put(TypePoint2D, geom.ToPoint2D(p))
}

// SetPoint3D stores a POINT3D copied from any spatial tuple.
func (v *Value) SetPoint3D(p geom.Tuple3D) {
	if p == nil {
		v.put(TypePoint3D, nil)
		return
	}
	v.put(TypePoint3D, geom.ToPoint3D(p))
}

// SetPolyline2D stores a copy of pts as a POLYLINE2D.
func (v *Value) SetPolyline2D(pts ...geom.Point2D) {
	v.put(TypePolyline2D, append([]geom.Point2D{}, pts...))
}

// AddToPolyline2D appends pts to the current POLYLINE2D. A value of any
// other variant is replaced by a polyline of pts.
func (v *Value) AddToPolyline2D(pts ...geom.Point2D) {
	var cur []geom.Point2D
	if v.typ() == TypePolyline2D {
		cur, _ = v.raw.([]geom.Point2D)
	}
	v.put(TypePolyline2D, append(append([]geom.Point2D{}, cur...), pts...))
}

// SetPolyline3D stores a copy of pts as a POLYLINE3D.
func (v *Value) SetPolyline3D(pts ...geom.Point3D) {
	v.put(TypePolyline3D, append([]geom.Point3D{}, pts...))
}

// AddToPolyline3D appends pts to the current POLYLINE3D. A value of any
// other variant is replaced by a polyline of pts.
func (v *Value) AddToPolyline3D(pts ...geom.Point3D) {
	var cur []geom.Point3D
	if v.typ() == TypePolyline3D {
		cur, _ = v.raw.([]geom.Point3D)
	}
	v.put(TypePolyline3D, append(append([]geom.Point3D{}, cur...), pts...))
}

// SetUUID stores a UUID.
func (v *Value) SetUUID(id uuid.UUID) {
	v.put(TypeUUID, id)
}

// SetUUIDString stores the UUID written in text. Text that is not a UUID
// is hashed into a name-based UUID.
func (v *Value) SetUUIDString(text string) {
	if id, err := parseStrictUUID(text); err == nil {
		v.put(TypeUUID, id)
		return
	}
	if id, err := uuid.Parse(text); err == nil {
		v.put(TypeUUID, id)
		return
	}
	v.put(TypeUUID, nameUUID(text))
}

// SetURL stores a copy of u. A nil URL leaves the value unassigned.
func (v *Value) SetURL(u *url.URL) {
	if u == nil {
		v.put(TypeURL, nil)
		return
	}
	c := *u
	v.put(TypeURL, &c)
}

// SetURLString stores the URL written in text, or leaves the value
// unassigned when text is not a URL with a known scheme.
func (v *Value) SetURLString(text string) {
	if u, err := parseURL(text); err == nil {
		v.put(TypeURL, u)
		return
	}
	v.put(TypeURL, nil)
}

// SetURI stores u. An empty URI leaves the value unassigned.
func (v *Value) SetURI(u URI) {
	if u.IsZero() {
		v.put(TypeURI, nil)
		return
	}
	v.put(TypeURI, u)
}

// SetURIString stores the URI written in text, or leaves the value
// unassigned when text does not parse.
func (v *Value) SetURIString(text string) {
	if u, err := ParseURI(text); err == nil && text != "" {
		v.put(TypeURI, u)
		return
	}
	v.put(TypeURI, nil)
}

// SetInetAddress stores an address. An invalid address leaves the value
// unassigned.
func (v *Value) SetInetAddress(a netip.Addr) {
	if !a.IsValid() {
		v.put(TypeInetAddress, nil)
		return
	}
	v.put(TypeInetAddress, a)
}

// SetInetAddressString stores the address written in text, or leaves the
// value unassigned when text is not an IP literal or "localhost".
func (v *Value) SetInetAddressString(text string) {
	if a, err := parseInet(text); err == nil {
		v.put(TypeInetAddress, a)
		return
	}
	v.put(TypeInetAddress, nil)
}

// SetEnumeration stores an enumeration constant. A nil constant leaves the
// value unassigned.
func (v *Value) SetEnumeration(e Enumerated) {
	if e == nil {
		v.put(TypeEnumeration, nil)
		return
	}
	v.put(TypeEnumeration, e)
}

// SetTypeRef stores a type reference.
func (v *Value) SetTypeRef(t TypeRef) {
	v.put(TypeTypeRef, t)
}

// SetGoType stores the reference of a Go type.
func (v *Value) SetGoType(t reflect.Type) {
	if t == nil {
		v.put(TypeTypeRef, nil)
		return
	}
	v.put(TypeTypeRef, TypeRefOf(t))
}

// SetObject stores raw as an opaque OBJECT payload. Unlike the other
// setters a nil payload still counts as assigned.
func (v *Value) SetObject(raw any) {
	v.setTyp(TypeObject)
	v.raw = raw
	v.assigned = true
}

// ============================================================
// Whole-value setters
// ============================================================

// SetValue stores raw under the variant it classifies as.
func (v *Value) SetValue(raw any) {
	to := Classify(raw)
	if !v.store(to, raw) {
		v.put(to, to.DefaultValue())
	}
}

// SetFrom copies the variant and payload of other. An unassigned other
// makes v unassigned with the same variant.
func (v *Value) SetFrom(other *Value) {
	if other == nil {
		v.Uninitialize()
		return
	}
	c := other.Clone()
	v.kind, v.raw, v.assigned = c.kind, c.raw, c.assigned
}

// SetToDefault stores the default payload of the current variant.
func (v *Value) SetToDefault() {
	v.raw = v.typ().DefaultValue()
	v.assigned = true
}

// SetToDefaultIfUninitialized calls SetToDefault on unassigned values.
func (v *Value) SetToDefaultIfUninitialized() {
	if !v.assigned {
		v.SetToDefault()
	}
}

// Uninitialize drops the payload and keeps the variant.
func (v *Value) Uninitialize() {
	v.raw = nil
	v.assigned = false
}
