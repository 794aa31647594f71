// Package attr implements typed attribute values: a payload tagged with one
// of a fixed catalog of variants, read back through total, coercing getters.
//
// # Variants
//
// The catalog is ordered. The order is also the priority Parse uses when it
// guesses the variant of free text:
//
//	ENUMERATION TYPE_REF UUID INTEGER REAL DATE BOOLEAN INET_ADDRESS URL URI
//	TIMESTAMP POINT3D POINT2D POLYLINE3D POLYLINE2D STRING OBJECT
//
// Each variant has a canonical Go payload (int64 for INTEGER, netip.Addr for
// INET_ADDRESS, []geom.Point2D for POLYLINE2D...). Variant.Cast converts any
// accepted raw payload to it.
//
// # Writers and readers
//
// Setters never fail. A payload that cannot be stored leaves the value
// unassigned, or holding the default of its variant for the Cast family.
//
// Getters are strict. They return ErrNotInitialized for an unassigned value
// and ErrTypeMismatch when the stored variant cannot be read as the
// requested one:
//
//	v := attr.NewString("2024-01-05")
//	d, _ := v.AsDate()          // 2024-01-05 local time
//	_, err := v.AsPoint2D()     // ErrTypeMismatch
//
// # Names
//
// Enumeration constants ("attr.Variant.INTEGER") and type names are looked
// up through a Resolver. DefaultRegistry knows the package's own types;
// more can be registered in code or loaded from YAML:
//
//	enums:
//	  shapes.Kind: [CIRCLE, SQUARE]
//	types: [shapes.Polygon]
//
// # Attributes
//
// An Attribute is a named Value. Names compare ignoring case and the empty
// name sorts last. A Collection holds attributes by name and reports every
// change to its listeners.
package attr
