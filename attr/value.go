package attr

import (
	"fmt"
	"net/netip"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// Value holds one payload tagged with its variant.
//
// The zero Value is an unassigned OBJECT. A Value is not safe for
// concurrent mutation.
type Value struct {
	kind     variantSlot
	raw      any
	assigned bool
	resolver Resolver
}

// variantSlot stores a Variant shifted by one so that the zero slot reads
// as OBJECT while ENUMERATION keeps ordinal 0.
type variantSlot uint8

func slotOf(v Variant) variantSlot {
	if !v.Valid() {
		v = TypeObject
	}
	return variantSlot(v) + 1
}

func (s variantSlot) variant() Variant {
	if s == 0 {
		return TypeObject
	}
	return Variant(s - 1)
}

func (v *Value) typ() Variant {
	return v.kind.variant()
}

func (v *Value) setTyp(to Variant) {
	v.kind = slotOf(to)
}

// ============================================================
// Constructors
// ============================================================

// New creates an unassigned OBJECT value.
func New() *Value {
	return &Value{kind: slotOf(TypeObject)}
}

// NewTyped creates an unassigned value of variant v.
func NewTyped(v Variant) *Value {
	return &Value{kind: slotOf(v)}
}

// NewWithRaw creates a value of variant v holding raw cast through v. When
// the cast fails the value is left unassigned.
func NewWithRaw(v Variant, raw any) *Value {
	val := &Value{kind: slotOf(v)}
	val.store(v, raw)
	return val
}

// Of classifies raw and wraps it in a value of the matching variant.
func Of(raw any) *Value {
	return NewWithRaw(Classify(raw), raw)
}

// Copy duplicates other, keeping its variant and payload. A payload that
// cannot be re-cast leaves the copy unassigned.
func Copy(other *Value) *Value {
	if other == nil {
		return New()
	}
	val := &Value{kind: other.kind, resolver: other.resolver}
	if other.assigned {
		val.store(other.typ(), other.rawOrNull())
	}
	return val
}

// NewInteger creates an INTEGER value.
func NewInteger(n int64) *Value {
	return &Value{kind: slotOf(TypeInteger), raw: n, assigned: true}
}

// NewReal creates a REAL value.
func NewReal(f float64) *Value {
	return &Value{kind: slotOf(TypeReal), raw: f, assigned: true}
}

// NewString creates a STRING value.
func NewString(s string) *Value {
	return &Value{kind: slotOf(TypeString), raw: s, assigned: true}
}

// NewBool creates a BOOLEAN value.
func NewBool(b bool) *Value {
	return &Value{kind: slotOf(TypeBoolean), raw: b, assigned: true}
}

// NewDate creates a DATE value.
func NewDate(t time.Time) *Value {
	return &Value{kind: slotOf(TypeDate), raw: t, assigned: true}
}

// NewTimestamp creates a TIMESTAMP value.
func NewTimestamp(ts Timestamp) *Value {
	return &Value{kind: slotOf(TypeTimestamp), raw: ts, assigned: true}
}

// NewPoint2D creates a POINT2D value.
func NewPoint2D(x, y float64) *Value {
	return &Value{kind: slotOf(TypePoint2D), raw: geom.Pt2(x, y), assigned: true}
}

// NewPoint3D creates a POINT3D value.
func NewPoint3D(x, y, z float64) *Value {
	return &Value{kind: slotOf(TypePoint3D), raw: geom.Pt3(x, y, z), assigned: true}
}

// NewPolyline2D creates a POLYLINE2D value. The points are copied.
func NewPolyline2D(pts ...geom.Point2D) *Value {
	return &Value{kind: slotOf(TypePolyline2D), raw: append([]geom.Point2D{}, pts...), assigned: true}
}

// NewPolyline3D creates a POLYLINE3D value. The points are copied.
func NewPolyline3D(pts ...geom.Point3D) *Value {
	return &Value{kind: slotOf(TypePolyline3D), raw: append([]geom.Point3D{}, pts...), assigned: true}
}

// NewUUID creates a UUID value.
func NewUUID(id uuid.UUID) *Value {
	return &Value{kind: slotOf(TypeUUID), raw: id, assigned: true}
}

// NewURL creates a URL value; a nil URL leaves it unassigned.
func NewURL(u *url.URL) *Value {
	return NewWithRaw(TypeURL, u)
}

// NewURI creates a URI value; an empty URI leaves it unassigned.
func NewURI(u URI) *Value {
	return NewWithRaw(TypeURI, u)
}

// NewInetAddress creates an INET_ADDRESS value; an invalid address leaves
// it unassigned.
func NewInetAddress(a netip.Addr) *Value {
	if !a.IsValid() {
		return NewTyped(TypeInetAddress)
	}
	return &Value{kind: slotOf(TypeInetAddress), raw: a, assigned: true}
}

// NewEnumeration creates an ENUMERATION value.
func NewEnumeration(e Enumerated) *Value {
	return NewWithRaw(TypeEnumeration, e)
}

// NewTypeRef creates a TYPE_REF value.
func NewTypeRef(t TypeRef) *Value {
	return &Value{kind: slotOf(TypeTypeRef), raw: t, assigned: true}
}

// ============================================================
// Internal state transitions
// ============================================================

// store casts raw through to and records the outcome. A typed null stays
// assigned with no payload; nil or an uncastable payload leaves the value
// unassigned.
func (v *Value) store(to Variant, raw any) bool {
	v.setTyp(to)
	payload, err := to.castWith(raw, v.resolver)
	if err != nil {
		v.raw, v.assigned = nil, false
		return false
	}
	v.raw = payload
	v.assigned = payload != nil || isNull(raw)
	return true
}

// put records an already canonical payload.
func (v *Value) put(to Variant, payload any) {
	v.setTyp(to)
	v.raw = payload
	v.assigned = payload != nil || !to.IsNullAllowed()
}

// rawOrNull returns the payload, or a typed null when an assigned value has
// none.
func (v *Value) rawOrNull() any {
	if v.assigned && v.raw == nil {
		return Null{Type: v.typ()}
	}
	return v.raw
}

func isNull(raw any) bool {
	switch p := raw.(type) {
	case Null:
		return true
	case *Null:
		return p != nil
	}
	return false
}

// ============================================================
// Accessors
// ============================================================

// Type returns the variant.
func (v *Value) Type() Variant {
	return v.typ()
}

// IsAssigned reports whether a payload, possibly a typed null, was stored.
func (v *Value) IsAssigned() bool {
	return v.assigned
}

// IsNull reports whether the value is assigned but holds no payload.
func (v *Value) IsNull() bool {
	return v.assigned && v.raw == nil
}

// IsBaseType reports whether the variant is a number, a boolean or a string.
func (v *Value) IsBaseType() bool {
	return v.typ().IsBaseType()
}

// IsNullAllowed reports whether the variant accepts an absent payload.
func (v *Value) IsNullAllowed() bool {
	return v.typ().IsNullAllowed()
}

// IsObjectValue reports whether the variant is not a base type.
func (v *Value) IsObjectValue() bool {
	return !v.typ().IsBaseType()
}

// IsAssignableFrom reports whether the variant accepts values of other.
func (v *Value) IsAssignableFrom(other Variant) bool {
	return v.typ().IsAssignableFrom(other)
}

// WithResolver sets the resolver used to read enumeration and type names
// and returns v. A nil resolver selects DefaultRegistry.
func (v *Value) WithResolver(r Resolver) *Value {
	v.resolver = r
	return v
}

// Resolver returns the resolver in effect.
func (v *Value) Resolver() Resolver {
	if v.resolver == nil {
		return DefaultRegistry()
	}
	return v.resolver
}

// Flush pushes the value to its backing store. Plain values have none, so
// this always reports success.
func (v *Value) Flush() bool {
	return true
}

// Clone returns an independent copy.
func (v *Value) Clone() *Value {
	c := *v
	switch p := v.raw.(type) {
	case []geom.Point2D:
		c.raw = append([]geom.Point2D{}, p...)
	case []geom.Point3D:
		c.raw = append([]geom.Point3D{}, p...)
	case *url.URL:
		if p != nil {
			u := *p
			c.raw = &u
		}
	}
	return &c
}

// String returns the debug form "[payload:TYPE]".
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	payload := "???"
	if v.raw != nil {
		payload = fmt.Sprint(v.raw)
	}
	return "[" + payload + ":" + v.typ().String() + "]"
}
