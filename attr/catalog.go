package attr

import (
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/attrs/geom"
)

// ============================================================
// Dispatch Table
// ============================================================

// variantSet is a bit set indexed by Variant.
type variantSet uint32

func setOf(vs ...Variant) variantSet {
	var s variantSet
	for _, v := range vs {
		s |= 1 << v
	}
	return s
}

func (s variantSet) has(v Variant) bool {
	return v.Valid() && s&(1<<v) != 0
}

const allVariants = variantSet(1<<numVariants - 1)

// behavior is the per-variant capability bundle.
type behavior struct {
	base     bool
	number   bool
	nullable bool
	accepts  variantSet
	zero     func() any
	cast     castFunc
}

var catalog = [numVariants]behavior{
	TypeEnumeration: {
		nullable: true,
		accepts:  setOf(TypeEnumeration, TypeString, TypeObject),
		zero:     func() any { return nil },
		cast:     castEnumeration,
	},
	TypeTypeRef: {
		accepts: setOf(TypeTypeRef, TypeString, TypeObject),
		zero:    func() any { return nil },
		cast:    castTypeRef,
	},
	TypeUUID: {
		accepts: allVariants,
		zero:    func() any { return uuid.Nil },
		cast:    castUUID,
	},
	TypeInteger: {
		base:    true,
		number:  true,
		accepts: setOf(TypeInteger, TypeReal, TypeTimestamp, TypeString, TypeDate, TypeBoolean, TypeEnumeration, TypeObject),
		zero:    func() any { return int64(0) },
		cast:    castInteger,
	},
	TypeReal: {
		base:    true,
		number:  true,
		accepts: setOf(TypeInteger, TypeReal, TypeTimestamp, TypeString, TypeDate, TypeBoolean, TypeEnumeration, TypeObject),
		zero:    func() any { return float64(0) },
		cast:    castReal,
	},
	TypeDate: {
		accepts: setOf(TypeDate, TypeReal, TypeInteger, TypeTimestamp, TypeString, TypeObject),
		zero:    func() any { return time.Now() },
		cast:    castDate,
	},
	TypeBoolean: {
		base:    true,
		accepts: setOf(TypeBoolean, TypeString, TypeInteger, TypeTimestamp, TypeReal, TypeObject),
		zero:    func() any { return false },
		cast:    castBoolean,
	},
	TypeInetAddress: {
		nullable: true,
		accepts:  setOf(TypeInetAddress, TypeString, TypeURL, TypeURI, TypeObject),
		zero:     func() any { return loopback },
		cast:     castInetAddress,
	},
	TypeURL: {
		nullable: true,
		accepts:  setOf(TypeURI, TypeURL, TypeInetAddress, TypeString, TypeObject),
		zero:     func() any { return nil },
		cast:     castURL,
	},
	TypeURI: {
		nullable: true,
		accepts:  setOf(TypeURI, TypeURL, TypeInetAddress, TypeString, TypeUUID, TypeObject),
		zero:     func() any { return nil },
		cast:     castURI,
	},
	TypeTimestamp: {
		base:    true,
		number:  true,
		accepts: setOf(TypeInteger, TypeReal, TypeTimestamp, TypeString, TypeDate, TypeBoolean, TypeObject),
		zero:    func() any { return Now() },
		cast:    castTimestamp,
	},
	TypePoint3D: {
		accepts: setOf(TypePoint2D, TypePoint3D, TypeReal, TypeInteger, TypeTimestamp, TypeDate, TypeString, TypeObject),
		zero:    func() any { return geom.Point3D{} },
		cast:    castPoint3D,
	},
	TypePoint2D: {
		accepts: setOf(TypePoint2D, TypePoint3D, TypeReal, TypeInteger, TypeTimestamp, TypeDate, TypeString, TypeObject),
		zero:    func() any { return geom.Point2D{} },
		cast:    castPoint2D,
	},
	TypePolyline3D: {
		accepts: setOf(TypePolyline2D, TypePolyline3D, TypePoint2D, TypePoint3D, TypeString, TypeObject),
		zero:    func() any { return []geom.Point3D{} },
		cast:    castPolyline3D,
	},
	TypePolyline2D: {
		accepts: setOf(TypePolyline2D, TypePolyline3D, TypePoint2D, TypePoint3D, TypeString, TypeObject),
		zero:    func() any { return []geom.Point2D{} },
		cast:    castPolyline2D,
	},
	TypeString: {
		base:    true,
		accepts: allVariants,
		zero:    func() any { return "" },
		cast:    castString,
	},
	TypeObject: {
		nullable: true,
		accepts:  allVariants,
		zero:     func() any { return nil },
		cast:     castObject,
	},
}

func (v Variant) behavior() *behavior {
	if v.Valid() {
		return &catalog[v]
	}
	return &catalog[TypeObject]
}

// ============================================================
// Variant capabilities
// ============================================================

// DefaultValue returns a fresh default payload. DATE and TIMESTAMP default to
// the current instant; OBJECT, URL, URI, ENUMERATION and TYPE_REF have no
// default and return nil.
func (v Variant) DefaultValue() any {
	return v.behavior().zero()
}

// IsBaseType reports whether v is a number, a boolean or a string.
func (v Variant) IsBaseType() bool {
	return v.behavior().base
}

// IsNumberType reports whether v is INTEGER, REAL or TIMESTAMP.
func (v Variant) IsNumberType() bool {
	return v.behavior().number
}

// IsNullAllowed reports whether an assigned value of v may hold no payload.
func (v Variant) IsNullAllowed() bool {
	return v.behavior().nullable
}

// IsAssignableFrom reports whether some value of other can be expressed as v.
// The relation is directed and not transitive.
func (v Variant) IsAssignableFrom(other Variant) bool {
	return v.behavior().accepts.has(other)
}

// InstanceOf reports whether raw classifies as v.
func (v Variant) InstanceOf(raw any) bool {
	return Classify(raw) == v
}

// Cast converts raw into the canonical payload of v without touching raw.
// Enumeration and type names are resolved through the default registry.
//
// A typed null casts to nil. A nil payload casts to nil when v allows null,
// to "" for STRING, and fails with ErrNotInitialized otherwise.
func (v Variant) Cast(raw any) (any, error) {
	return v.castWith(raw, DefaultRegistry())
}

func (v Variant) castWith(raw any, r Resolver) (any, error) {
	if r == nil {
		r = DefaultRegistry()
	}
	switch p := raw.(type) {
	case Null:
		return nil, nil
	case *Null:
		if p != nil {
			return nil, nil
		}
		raw = nil
	}
	if raw == nil {
		switch {
		case v == TypeString:
			return "", nil
		case v.IsNullAllowed():
			return nil, nil
		}
		return nil, notInitialized("Cast", TypeObject, v)
	}
	return v.behavior().cast(raw, r)
}
