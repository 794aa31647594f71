package attr

import (
	"math/big"
	"net"
	"net/netip"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

var (
	tuple2DType = reflect.TypeOf((*geom.Tuple2D)(nil)).Elem()
	tuple3DType = reflect.TypeOf((*geom.Tuple3D)(nil)).Elem()
)

// Classify returns the variant that naturally holds payload. A typed null
// reports its own variant; nil and unrecognized payloads are OBJECT.
func Classify(payload any) Variant {
	switch p := payload.(type) {
	case nil:
		return TypeObject
	case Null:
		return p.Type
	case *Null:
		if p == nil {
			return TypeObject
		}
		return p.Type
	case Timestamp:
		return TypeTimestamp
	case Enumerated:
		return TypeEnumeration
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int:
		return TypeInteger
	case float32, float64, *big.Float:
		return TypeReal
	case string, []byte, []rune:
		return TypeString
	case bool:
		return TypeBoolean
	case time.Time, *time.Time:
		return TypeDate
	case uuid.UUID:
		return TypeUUID
	case *url.URL, url.URL:
		return TypeURL
	case URI:
		return TypeURI
	case netip.Addr, netip.AddrPort, net.IP:
		return TypeInetAddress
	case TypeRef, reflect.Type:
		return TypeTypeRef
	case geom.Tuple3D:
		return TypePoint3D
	case geom.Tuple2D:
		return TypePoint2D
	}
	if v, ok := tupleSliceVariant(payload); ok {
		return v
	}
	return TypeObject
}

// tupleSliceVariant recognizes slices and arrays of coordinate tuples. The
// element type decides when it implements a tuple interface; otherwise every
// element is inspected. Empty slices of interface elements are OBJECT.
func tupleSliceVariant(payload any) (Variant, bool) {
	rv := reflect.ValueOf(payload)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return TypeObject, false
	}
	elem := rv.Type().Elem()
	switch {
	case elem.Implements(tuple3DType):
		return TypePolyline3D, true
	case elem.Implements(tuple2DType):
		return TypePolyline2D, true
	case elem.Kind() != reflect.Interface || rv.Len() == 0:
		return TypeObject, false
	}
	all3D, all2D := true, true
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i).Interface()
		if _, ok := e.(geom.Tuple3D); !ok {
			all3D = false
		}
		if _, ok := e.(geom.Tuple2D); !ok {
			all2D = false
		}
	}
	switch {
	case all3D:
		return TypePolyline3D, true
	case all2D:
		return TypePolyline2D, true
	}
	return TypeObject, false
}
