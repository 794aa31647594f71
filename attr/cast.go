package attr

import (
	"fmt"
	"math"
	"math/big"
	"net"
	"net/netip"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// ============================================================
// Numeric payloads
// ============================================================

// asInt64 converts any numeric payload, truncating reals.
func asInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return clampUint(uint64(n)), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return clampUint(n), true
	case Timestamp:
		return int64(n), true
	case float32:
		return truncate(float64(n)), true
	case float64:
		return truncate(n), true
	case *big.Int:
		switch {
		case n == nil:
			return 0, false
		case n.IsInt64():
			return n.Int64(), true
		case n.Sign() > 0:
			return math.MaxInt64, true
		}
		return math.MinInt64, true
	case *big.Float:
		if n == nil {
			return 0, false
		}
		i, _ := n.Int64()
		return i, true
	}
	return 0, false
}

// asFloat64 converts any numeric payload.
func asFloat64(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case *big.Float:
		if n == nil {
			return 0, false
		}
		f, _ := n.Float64()
		return f, true
	case *big.Int:
		if n == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	}
	if i, ok := asInt64(raw); ok {
		return float64(i), true
	}
	return 0, false
}

// isNumeric reports whether raw is one of the numeric payloads.
func isNumeric(raw any) bool {
	_, ok := asFloat64(raw)
	return ok
}

func clampUint(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// ============================================================
// Structured payloads
// ============================================================

func asTime(raw any) (time.Time, bool) {
	switch t := raw.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

func asURL(raw any) (*url.URL, bool) {
	switch u := raw.(type) {
	case *url.URL:
		if u == nil {
			return nil, false
		}
		c := *u
		return &c, true
	case url.URL:
		return &u, true
	}
	return nil, false
}

func asAddr(raw any) (netip.Addr, bool) {
	switch a := raw.(type) {
	case netip.Addr:
		return a, a.IsValid()
	case netip.AddrPort:
		return a.Addr(), a.IsValid()
	case net.IP:
		addr, ok := netip.AddrFromSlice(a)
		return addr.Unmap(), ok
	}
	return netip.Addr{}, false
}

// asTuples2D copies a slice or array of 2D tuples.
func asTuples2D(raw any) ([]geom.Point2D, bool) {
	if pts, ok := raw.([]geom.Point2D); ok {
		return append([]geom.Point2D{}, pts...), true
	}
	rv := reflect.ValueOf(raw)
	if !tupleContainer(rv, tuple2DType) {
		return nil, false
	}
	out := make([]geom.Point2D, rv.Len())
	for i := range out {
		t, ok := rv.Index(i).Interface().(geom.Tuple2D)
		if !ok {
			return nil, false
		}
		out[i] = geom.ToPoint2D(t)
	}
	return out, true
}

// asTuples3D copies a slice or array of 3D tuples.
func asTuples3D(raw any) ([]geom.Point3D, bool) {
	if pts, ok := raw.([]geom.Point3D); ok {
		return append([]geom.Point3D{}, pts...), true
	}
	rv := reflect.ValueOf(raw)
	if !tupleContainer(rv, tuple3DType) {
		return nil, false
	}
	out := make([]geom.Point3D, rv.Len())
	for i := range out {
		t, ok := rv.Index(i).Interface().(geom.Tuple3D)
		if !ok {
			return nil, false
		}
		out[i] = geom.ToPoint3D(t)
	}
	return out, true
}

// tupleContainer reports whether rv is a slice or array whose elements are,
// or may hold, tuples of type t.
func tupleContainer(rv reflect.Value, t reflect.Type) bool {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	elem := rv.Type().Elem()
	return elem.Implements(t) || elem.Kind() == reflect.Interface
}

// canonicalText renders any payload in its variant's text form.
func canonicalText(raw any) string {
	switch p := raw.(type) {
	case nil:
		return ""
	case string:
		return p
	case []byte:
		return string(p)
	case []rune:
		return string(p)
	case bool:
		return formatBool(p)
	case Timestamp:
		return formatTimestamp(p)
	case Enumerated:
		return enumText(p)
	case float32:
		return formatReal(float64(p))
	case float64:
		return formatReal(p)
	case *big.Float:
		return p.Text('g', -1)
	case *big.Int:
		return p.String()
	case geom.Point2D:
		return formatPoint2D(p)
	case geom.Point3D:
		return formatPoint3D(p)
	case []geom.Point2D:
		return formatPolyline2D(p)
	case []geom.Point3D:
		return formatPolyline3D(p)
	case reflect.Type:
		return TypeRefOf(p).Name
	}
	if i, ok := asInt64(raw); ok {
		return formatInteger(i)
	}
	if t, ok := asTime(raw); ok {
		return formatDate(t)
	}
	if u, ok := asURL(raw); ok {
		return u.String()
	}
	if a, ok := asAddr(raw); ok {
		return a.String()
	}
	return fmt.Sprint(raw)
}

// ============================================================
// Per-variant casts
// ============================================================
//
// Each cast receives a non-nil, non-Null payload and returns the canonical
// representation of its variant.

type castFunc func(raw any, r Resolver) (any, error)

func castInteger(raw any, _ Resolver) (any, error) {
	if e, ok := raw.(Enumerated); ok {
		return int64(e.Ordinal()), nil
	}
	if i, ok := asInt64(raw); ok {
		return i, nil
	}
	return nil, classMismatch(TypeInteger, raw)
}

func castReal(raw any, _ Resolver) (any, error) {
	if e, ok := raw.(Enumerated); ok {
		return float64(e.Ordinal()), nil
	}
	if f, ok := asFloat64(raw); ok {
		return f, nil
	}
	return nil, classMismatch(TypeReal, raw)
}

func castString(raw any, _ Resolver) (any, error) {
	return canonicalText(raw), nil
}

func castBoolean(raw any, _ Resolver) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	return nil, classMismatch(TypeBoolean, raw)
}

func castDate(raw any, _ Resolver) (any, error) {
	if t, ok := asTime(raw); ok {
		return t, nil
	}
	if i, ok := asInt64(raw); ok {
		return time.UnixMilli(i), nil
	}
	return nil, classMismatch(TypeDate, raw)
}

func castTimestamp(raw any, _ Resolver) (any, error) {
	if t, ok := asTime(raw); ok {
		return TimestampOf(t), nil
	}
	if i, ok := asInt64(raw); ok {
		return Timestamp(i), nil
	}
	return nil, classMismatch(TypeTimestamp, raw)
}

func castPoint3D(raw any, _ Resolver) (any, error) {
	switch t := raw.(type) {
	case geom.Tuple3D:
		return geom.ToPoint3D(t), nil
	case geom.Tuple2D:
		return geom.Lift(geom.ToPoint2D(t)), nil
	}
	return nil, classMismatch(TypePoint3D, raw)
}

func castPoint2D(raw any, _ Resolver) (any, error) {
	switch t := raw.(type) {
	case geom.Tuple2D:
		return geom.ToPoint2D(t), nil
	case geom.Tuple3D:
		return geom.Project(geom.ToPoint3D(t)), nil
	}
	return nil, classMismatch(TypePoint2D, raw)
}

// Polyline casts also accept a single tuple as a one-point line and lines
// of the other dimension.

func castPolyline3D(raw any, _ Resolver) (any, error) {
	switch t := raw.(type) {
	case geom.Tuple3D:
		return []geom.Point3D{geom.ToPoint3D(t)}, nil
	case geom.Tuple2D:
		return []geom.Point3D{geom.Lift(geom.ToPoint2D(t))}, nil
	}
	if pts, ok := asTuples3D(raw); ok {
		return pts, nil
	}
	if pts, ok := asTuples2D(raw); ok {
		return lift(pts), nil
	}
	return nil, classMismatch(TypePolyline3D, raw)
}

func castPolyline2D(raw any, _ Resolver) (any, error) {
	switch t := raw.(type) {
	case geom.Tuple2D:
		return []geom.Point2D{geom.ToPoint2D(t)}, nil
	case geom.Tuple3D:
		return []geom.Point2D{geom.Project(geom.ToPoint3D(t))}, nil
	}
	if pts, ok := asTuples2D(raw); ok {
		return pts, nil
	}
	if pts, ok := asTuples3D(raw); ok {
		return project(pts), nil
	}
	return nil, classMismatch(TypePolyline2D, raw)
}

func castUUID(raw any, _ Resolver) (any, error) {
	switch id := raw.(type) {
	case uuid.UUID:
		return id, nil
	case [16]byte:
		return uuid.UUID(id), nil
	}
	return nil, classMismatch(TypeUUID, raw)
}

func castURL(raw any, _ Resolver) (any, error) {
	if u, ok := asURL(raw); ok {
		return u, nil
	}
	if u, ok := raw.(URI); ok {
		if u.IsZero() {
			return nil, nil
		}
		return u.URL(), nil
	}
	if a, ok := asAddr(raw); ok {
		return addrURL(a), nil
	}
	return nil, classMismatch(TypeURL, raw)
}

func castURI(raw any, _ Resolver) (any, error) {
	if u, ok := raw.(URI); ok {
		if u.IsZero() {
			return nil, nil
		}
		return u, nil
	}
	if u, ok := asURL(raw); ok {
		return URIFromURL(u), nil
	}
	if a, ok := asAddr(raw); ok {
		return URIFromURL(addrURL(a)), nil
	}
	return nil, classMismatch(TypeURI, raw)
}

func castInetAddress(raw any, _ Resolver) (any, error) {
	if a, ok := asAddr(raw); ok {
		return a, nil
	}
	switch p := raw.(type) {
	case *url.URL:
		if a, err := hostAddr(p.Hostname()); err == nil {
			return a, nil
		}
	case URI:
		if a, err := hostAddr(p.Host()); err == nil {
			return a, nil
		}
	case string:
		if a, err := parseInet(p); err == nil {
			return a, nil
		}
	}
	return nil, classMismatch(TypeInetAddress, raw)
}

func castEnumeration(raw any, r Resolver) (any, error) {
	switch p := raw.(type) {
	case Enumerated:
		return p, nil
	case string:
		if e, ok := resolveEnum(r, p); ok {
			return e, nil
		}
	}
	return nil, classMismatch(TypeEnumeration, raw)
}

func castTypeRef(raw any, r Resolver) (any, error) {
	switch p := raw.(type) {
	case TypeRef:
		return p, nil
	case reflect.Type:
		return TypeRefOf(p), nil
	case string:
		if t, ok := r.ResolveType(p); ok {
			return t, nil
		}
	}
	return nil, classMismatch(TypeTypeRef, raw)
}

func castObject(raw any, _ Resolver) (any, error) {
	return raw, nil
}

// resolveEnum reads "Type.CONSTANT" through r.
func resolveEnum(r Resolver, text string) (Enumerated, bool) {
	typeName, constant, ok := splitQualified(text)
	if !ok {
		return nil, false
	}
	return r.ResolveEnum(typeName, constant)
}
