package attr

import (
	"math"
	"net/netip"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// Getters are strict. Every one of them fails with ErrNotInitialized when
// the value is unassigned or holds no payload, and with ErrTypeMismatch when
// the stored variant cannot be expressed in the requested one.

// zeroEpsilon bounds the reals read as false.
const zeroEpsilon = 1e-10

// ready checks that a payload is present.
func (v *Value) ready(op string, to Variant) error {
	if !v.assigned || v.raw == nil {
		return notInitialized(op, v.typ(), to)
	}
	return nil
}

// Raw returns the stored payload. A typed null yields nil.
func (v *Value) Raw() (any, error) {
	if !v.assigned {
		return nil, notInitialized("Raw", v.typ(), v.typ())
	}
	return v.raw, nil
}

// ============================================================
// Numbers
// ============================================================

// AsInteger reads the value as an integer. Reals are truncated, dates give
// epoch milliseconds, booleans give 0 or 1 and enumeration constants give
// their ordinal.
func (v *Value) AsInteger() (int64, error) {
	const op = "AsInteger"
	if err := v.ready(op, TypeInteger); err != nil {
		return 0, err
	}
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal:
		if n, ok := asInt64(v.raw); ok {
			return n, nil
		}
	case TypeString:
		if n, err := parseInteger(v.raw.(string)); err == nil {
			return n, nil
		}
	case TypeDate:
		return v.raw.(time.Time).UnixMilli(), nil
	case TypeBoolean:
		if v.raw.(bool) {
			return 1, nil
		}
		return 0, nil
	case TypeEnumeration:
		return int64(v.raw.(Enumerated).Ordinal()), nil
	case TypeObject:
		if n, ok := asInt64(v.raw); ok {
			return n, nil
		}
	}
	return 0, mismatch(op, v.typ(), TypeInteger)
}

// AsReal reads the value as a real, with the same sources as AsInteger.
func (v *Value) AsReal() (float64, error) {
	const op = "AsReal"
	if err := v.ready(op, TypeReal); err != nil {
		return 0, err
	}
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal:
		if f, ok := asFloat64(v.raw); ok {
			return f, nil
		}
	case TypeString:
		if f, err := parseReal(v.raw.(string)); err == nil {
			return f, nil
		}
	case TypeDate:
		return float64(v.raw.(time.Time).UnixMilli()), nil
	case TypeBoolean:
		if v.raw.(bool) {
			return 1, nil
		}
		return 0, nil
	case TypeEnumeration:
		return float64(v.raw.(Enumerated).Ordinal()), nil
	case TypeObject:
		if f, ok := asFloat64(v.raw); ok {
			return f, nil
		}
	}
	return 0, mismatch(op, v.typ(), TypeReal)
}

// AsTimestamp reads the value as milliseconds since the epoch. Text is read
// as an integer first, then as a date.
func (v *Value) AsTimestamp() (Timestamp, error) {
	const op = "AsTimestamp"
	if err := v.ready(op, TypeTimestamp); err != nil {
		return 0, err
	}
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal:
		if n, ok := asInt64(v.raw); ok {
			return Timestamp(n), nil
		}
	case TypeString:
		if n, err := parseInteger(v.raw.(string)); err == nil {
			return Timestamp(n), nil
		}
		if t, err := parseDate(v.raw.(string)); err == nil {
			return TimestampOf(t), nil
		}
	case TypeDate:
		return TimestampOf(v.raw.(time.Time)), nil
	case TypeBoolean:
		if v.raw.(bool) {
			return 1, nil
		}
		return 0, nil
	case TypeObject:
		if n, ok := asInt64(v.raw); ok {
			return Timestamp(n), nil
		}
		if t, ok := asTime(v.raw); ok {
			return TimestampOf(t), nil
		}
	}
	return 0, mismatch(op, v.typ(), TypeTimestamp)
}

// ============================================================
// Text, booleans and dates
// ============================================================

// AsString returns the canonical text form of the payload.
func (v *Value) AsString() (string, error) {
	if err := v.ready("AsString", TypeString); err != nil {
		return "", err
	}
	return canonicalText(v.raw), nil
}

// AsBool reads the value as a boolean. Text must be one of TrueConstants
// or FalseConstants; numbers are true when not zero.
func (v *Value) AsBool() (bool, error) {
	const op = "AsBool"
	if err := v.ready(op, TypeBoolean); err != nil {
		return false, err
	}
	switch v.typ() {
	case TypeBoolean:
		return v.raw.(bool), nil
	case TypeString:
		if b, err := parseBool(v.raw.(string)); err == nil {
			return b, nil
		}
	case TypeInteger, TypeTimestamp:
		n, _ := asInt64(v.raw)
		return n != 0, nil
	case TypeReal:
		return math.Abs(v.raw.(float64)) > zeroEpsilon, nil
	case TypeObject:
		if b, ok := v.raw.(bool); ok {
			return b, nil
		}
	}
	return false, mismatch(op, v.typ(), TypeBoolean)
}

// AsDate reads the value as a point in time. Numbers are epoch milliseconds.
func (v *Value) AsDate() (time.Time, error) {
	const op = "AsDate"
	if err := v.ready(op, TypeDate); err != nil {
		return time.Time{}, err
	}
	switch v.typ() {
	case TypeDate:
		return v.raw.(time.Time), nil
	case TypeInteger, TypeTimestamp, TypeReal:
		n, _ := asInt64(v.raw)
		return time.UnixMilli(n), nil
	case TypeString:
		if t, err := parseDate(v.raw.(string)); err == nil {
			return t, nil
		}
	case TypeObject:
		if t, ok := asTime(v.raw); ok {
			return t, nil
		}
		if n, ok := asInt64(v.raw); ok {
			return time.UnixMilli(n), nil
		}
	}
	return time.Time{}, mismatch(op, v.typ(), TypeDate)
}

// ============================================================
// Coordinates
// ============================================================

// scalar reads numeric and temporal payloads as a single coordinate.
func (v *Value) scalar() (float64, bool) {
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal:
		return asFloat64(v.raw)
	case TypeDate:
		return float64(v.raw.(time.Time).UnixMilli()), true
	}
	return 0, false
}

// AsPoint2D reads the value as a planar point. Scalars become (x, 0) and
// 3D points are projected.
func (v *Value) AsPoint2D() (geom.Point2D, error) {
	const op = "AsPoint2D"
	if err := v.ready(op, TypePoint2D); err != nil {
		return geom.Point2D{}, err
	}
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal, TypeDate:
		f, _ := v.scalar()
		return geom.Pt2(f, 0), nil
	case TypePoint2D:
		return v.raw.(geom.Point2D), nil
	case TypePoint3D:
		return geom.Project(v.raw.(geom.Point3D)), nil
	case TypeString:
		if p, err := parsePoint2D(v.raw.(string), false); err == nil {
			return p, nil
		}
	case TypeObject:
		switch t := v.raw.(type) {
		case geom.Tuple2D:
			return geom.ToPoint2D(t), nil
		case geom.Tuple3D:
			return geom.Project(geom.ToPoint3D(t)), nil
		}
	}
	return geom.Point2D{}, mismatch(op, v.typ(), TypePoint2D)
}

// AsPoint3D reads the value as a point in space. Scalars become (x, 0, 0)
// and planar points are lifted to z=0.
func (v *Value) AsPoint3D() (geom.Point3D, error) {
	const op = "AsPoint3D"
	if err := v.ready(op, TypePoint3D); err != nil {
		return geom.Point3D{}, err
	}
	switch v.typ() {
	case TypeInteger, TypeTimestamp, TypeReal, TypeDate:
		f, _ := v.scalar()
		return geom.Pt3(f, 0, 0), nil
	case TypePoint2D:
		return geom.Lift(v.raw.(geom.Point2D)), nil
	case TypePoint3D:
		return v.raw.(geom.Point3D), nil
	case TypeString:
		if p, err := parsePoint3D(v.raw.(string), false); err == nil {
			return p, nil
		}
	case TypeObject:
		switch t := v.raw.(type) {
		case geom.Tuple3D:
			return geom.ToPoint3D(t), nil
		case geom.Tuple2D:
			return geom.Lift(geom.ToPoint2D(t)), nil
		}
	}
	return geom.Point3D{}, mismatch(op, v.typ(), TypePoint3D)
}

// AsPolyline2D reads the value as a list of planar points. The returned
// slice is a copy.
func (v *Value) AsPolyline2D() ([]geom.Point2D, error) {
	const op = "AsPolyline2D"
	if err := v.ready(op, TypePolyline2D); err != nil {
		return nil, err
	}
	switch v.typ() {
	case TypePoint2D:
		return []geom.Point2D{v.raw.(geom.Point2D)}, nil
	case TypePoint3D:
		return []geom.Point2D{geom.Project(v.raw.(geom.Point3D))}, nil
	case TypePolyline2D:
		return append([]geom.Point2D{}, v.raw.([]geom.Point2D)...), nil
	case TypePolyline3D:
		return project(v.raw.([]geom.Point3D)), nil
	case TypeString:
		if pts, err := parsePolyline2D(v.raw.(string), false); err == nil {
			return pts, nil
		}
	case TypeObject:
		switch t := v.raw.(type) {
		case geom.Tuple2D:
			return []geom.Point2D{geom.ToPoint2D(t)}, nil
		case geom.Tuple3D:
			return []geom.Point2D{geom.Project(geom.ToPoint3D(t))}, nil
		}
		if pts, ok := asTuples2D(v.raw); ok {
			return pts, nil
		}
		if pts, ok := asTuples3D(v.raw); ok {
			return project(pts), nil
		}
	}
	return nil, mismatch(op, v.typ(), TypePolyline2D)
}

// AsPolyline3D reads the value as a list of points in space. The returned
// slice is a copy.
func (v *Value) AsPolyline3D() ([]geom.Point3D, error) {
	const op = "AsPolyline3D"
	if err := v.ready(op, TypePolyline3D); err != nil {
		return nil, err
	}
	switch v.typ() {
	case TypePoint2D:
		return []geom.Point3D{geom.Lift(v.raw.(geom.Point2D))}, nil
	case TypePoint3D:
		return []geom.Point3D{v.raw.(geom.Point3D)}, nil
	case TypePolyline2D:
		return lift(v.raw.([]geom.Point2D)), nil
	case TypePolyline3D:
		return append([]geom.Point3D{}, v.raw.([]geom.Point3D)...), nil
	case TypeString:
		if pts, err := parsePolyline3D(v.raw.(string), false); err == nil {
			return pts, nil
		}
	case TypeObject:
		switch t := v.raw.(type) {
		case geom.Tuple3D:
			return []geom.Point3D{geom.ToPoint3D(t)}, nil
		case geom.Tuple2D:
			return []geom.Point3D{geom.Lift(geom.ToPoint2D(t))}, nil
		}
		if pts, ok := asTuples3D(v.raw); ok {
			return pts, nil
		}
		if pts, ok := asTuples2D(v.raw); ok {
			return lift(pts), nil
		}
	}
	return nil, mismatch(op, v.typ(), TypePolyline3D)
}

func project(pts []geom.Point3D) []geom.Point2D {
	out := make([]geom.Point2D, len(pts))
	for i, p := range pts {
		out[i] = geom.Project(p)
	}
	return out
}

func lift(pts []geom.Point2D) []geom.Point3D {
	out := make([]geom.Point3D, len(pts))
	for i, p := range pts {
		out[i] = geom.Lift(p)
	}
	return out
}

// ============================================================
// Identifiers, locators and addresses
// ============================================================

// AsUUID reads the value as a UUID. "uuid:" URIs are decoded; any other
// payload is read from its text form, falling back to a name-based UUID
// derived from that text.
func (v *Value) AsUUID() (uuid.UUID, error) {
	if err := v.ready("AsUUID", TypeUUID); err != nil {
		return uuid.Nil, err
	}
	if id, ok := v.raw.(uuid.UUID); ok {
		return id, nil
	}
	text := canonicalText(v.raw)
	if id, err := parseStrictUUID(text); err == nil {
		return id, nil
	}
	return nameUUID(text), nil
}

// AsURL reads the value as a URL. Text must use one of the known URL
// schemes; addresses become "file://<ip>".
func (v *Value) AsURL() (*url.URL, error) {
	const op = "AsURL"
	if err := v.ready(op, TypeURL); err != nil {
		return nil, err
	}
	switch v.typ() {
	case TypeURI:
		return v.raw.(URI).URL(), nil
	case TypeInetAddress:
		return addrURL(v.raw.(netip.Addr)), nil
	}
	if u, ok := asURL(v.raw); ok {
		return u, nil
	}
	if u, err := parseURL(canonicalText(v.raw)); err == nil {
		return u, nil
	}
	return nil, mismatch(op, v.typ(), TypeURL)
}

// AsURI reads the value as a URI. Text needs a scheme; UUIDs become
// "uuid:<id>".
func (v *Value) AsURI() (URI, error) {
	const op = "AsURI"
	if err := v.ready(op, TypeURI); err != nil {
		return URI{}, err
	}
	switch v.typ() {
	case TypeURI:
		return v.raw.(URI), nil
	case TypeURL:
		return URIFromURL(v.raw.(*url.URL)), nil
	case TypeUUID:
		return ParseURI(uuidScheme + ":" + v.raw.(uuid.UUID).String())
	case TypeInetAddress:
		return URIFromURL(addrURL(v.raw.(netip.Addr))), nil
	case TypeString:
		if u, err := parseStrictURI(v.raw.(string)); err == nil {
			return u, nil
		}
	case TypeObject:
		if u, ok := v.raw.(URI); ok && !u.IsZero() {
			return u, nil
		}
		if u, ok := asURL(v.raw); ok {
			return URIFromURL(u), nil
		}
		if u, err := parseStrictURI(canonicalText(v.raw)); err == nil {
			return u, nil
		}
	}
	return URI{}, mismatch(op, v.typ(), TypeURI)
}

// AsInetAddress reads the value as an IP address. Host names other than
// "localhost" are not resolved.
func (v *Value) AsInetAddress() (netip.Addr, error) {
	const op = "AsInetAddress"
	if err := v.ready(op, TypeInetAddress); err != nil {
		return netip.Addr{}, err
	}
	switch v.typ() {
	case TypeInetAddress:
		return v.raw.(netip.Addr), nil
	case TypeString:
		if a, err := parseInet(v.raw.(string)); err == nil {
			return a, nil
		}
	case TypeURL:
		if a, err := hostAddr(v.raw.(*url.URL).Hostname()); err == nil {
			return a, nil
		}
	case TypeURI:
		if a, err := hostAddr(v.raw.(URI).Host()); err == nil {
			return a, nil
		}
	case TypeObject:
		if a, ok := asAddr(v.raw); ok {
			return a, nil
		}
	}
	return netip.Addr{}, mismatch(op, v.typ(), TypeInetAddress)
}

// ============================================================
// Enumerations, type references and opaque payloads
// ============================================================

// AsEnumeration reads the value as an enumeration constant. Text of the form
// "Type.CONSTANT" is looked up through the value's resolver. A typed null
// ENUMERATION or OBJECT yields nil without error.
func (v *Value) AsEnumeration() (Enumerated, error) {
	const op = "AsEnumeration"
	if v.assigned && v.raw == nil && (v.typ() == TypeEnumeration || v.typ() == TypeObject) {
		return nil, nil
	}
	if err := v.ready(op, TypeEnumeration); err != nil {
		return nil, err
	}
	switch v.typ() {
	case TypeEnumeration:
		return v.raw.(Enumerated), nil
	case TypeString:
		if e, ok := resolveEnum(v.Resolver(), v.raw.(string)); ok {
			return e, nil
		}
	case TypeObject:
		if e, ok := v.raw.(Enumerated); ok {
			return e, nil
		}
	}
	return nil, mismatch(op, v.typ(), TypeEnumeration)
}

// AsTypeRef reads the value as a type reference. Text is looked up through
// the value's resolver.
func (v *Value) AsTypeRef() (TypeRef, error) {
	const op = "AsTypeRef"
	if err := v.ready(op, TypeTypeRef); err != nil {
		return TypeRef{}, err
	}
	switch v.typ() {
	case TypeTypeRef:
		return v.raw.(TypeRef), nil
	case TypeString:
		if t, ok := v.Resolver().ResolveType(strings.TrimSpace(v.raw.(string))); ok {
			return t, nil
		}
	case TypeObject:
		switch t := v.raw.(type) {
		case TypeRef:
			return t, nil
		case reflect.Type:
			return TypeRefOf(t), nil
		}
	}
	return TypeRef{}, mismatch(op, v.typ(), TypeTypeRef)
}

// AsObject returns the payload of a non-base value as is. An unassigned
// value yields nil. Base variants fail with ErrInvalidType.
func (v *Value) AsObject() (any, error) {
	if v.typ().IsBaseType() {
		return nil, &ConversionError{Op: "AsObject", From: v.typ(), To: TypeObject, Err: ErrInvalidType}
	}
	if !v.assigned {
		return nil, nil
	}
	return v.raw, nil
}
