package attr

import (
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Neumenon/attrs/geom"
)

// Resolver maps stable text identifiers to enumeration constants and type
// references. It stands in for dynamic type loading: ENUMERATION and TYPE_REF
// values can only be read from text the resolver knows about.
type Resolver interface {
	// ResolveEnum finds the constant named constant in enumeration typeName.
	ResolveEnum(typeName, constant string) (Enumerated, bool)
	// ResolveType finds a type by its canonical name.
	ResolveType(name string) (TypeRef, bool)
}

// Registry is the standard Resolver. It is safe for concurrent use so a
// single registry can be shared by the whole process.
type Registry struct {
	mu    sync.RWMutex
	enums map[string][]Enumerated
	types map[string]TypeRef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		enums: make(map[string][]Enumerated),
		types: make(map[string]TypeRef),
	}
}

var defaultRegistry = newDefaultRegistry()

// DefaultRegistry returns the process-wide registry used by values that were
// not given a resolver. It knows the attr.Variant enumeration and the payload
// types of the catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, v := range Variants() {
		r.RegisterEnumValues(v)
	}
	for _, t := range []reflect.Type{
		reflect.TypeOf(Value{}),
		reflect.TypeOf(Attribute{}),
		reflect.TypeOf(Timestamp(0)),
		reflect.TypeOf(URI{}),
		reflect.TypeOf(TypeRef{}),
		reflect.TypeOf(EnumConstant{}),
		reflect.TypeOf(time.Time{}),
		reflect.TypeOf(uuid.UUID{}),
		reflect.TypeOf(url.URL{}),
		reflect.TypeOf(netip.Addr{}),
		reflect.TypeOf(geom.Point2D{}),
		reflect.TypeOf(geom.Point3D{}),
	} {
		r.RegisterGoType(t)
	}
	return r
}

// ============================================================
// Registration
// ============================================================

// RegisterEnum declares an enumeration by name; constants get ordinals in
// the order given. Re-registering a type replaces it.
func (r *Registry) RegisterEnum(typeName string, constants ...string) {
	values := make([]Enumerated, len(constants))
	for i, c := range constants {
		values[i] = EnumConstant{Type: typeName, Name: c, Index: i}
	}
	r.mu.Lock()
	r.enums[typeName] = values
	r.mu.Unlock()
}

// RegisterEnumValues registers host-defined constants. Constants are grouped
// by EnumType and kept sorted by Ordinal.
func (r *Registry) RegisterEnumValues(values ...Enumerated) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range values {
		list := r.enums[v.EnumType()]
		replaced := false
		for i, existing := range list {
			if existing.EnumName() == v.EnumName() {
				list[i] = v
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, v)
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Ordinal() < list[j].Ordinal() })
		r.enums[v.EnumType()] = list
	}
}

// RegisterType declares a type reference by name.
func (r *Registry) RegisterType(name string) TypeRef {
	ref := TypeRef{Name: name}
	r.mu.Lock()
	r.types[name] = ref
	r.mu.Unlock()
	return ref
}

// RegisterGoType declares a Go type under its reflect name.
func (r *Registry) RegisterGoType(t reflect.Type) TypeRef {
	return r.RegisterType(TypeRefOf(t).Name)
}

// Merge copies every registration of other into r.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, values := range other.enums {
		r.enums[name] = append([]Enumerated(nil), values...)
	}
	for name, ref := range other.types {
		r.types[name] = ref
	}
}

// ============================================================
// Resolution
// ============================================================

// ResolveEnum implements Resolver. Constant names match exactly first, then
// case-insensitively.
func (r *Registry) ResolveEnum(typeName, constant string) (Enumerated, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values, ok := r.enums[typeName]
	if !ok {
		return nil, false
	}
	for _, v := range values {
		if v.EnumName() == constant {
			return v, true
		}
	}
	for _, v := range values {
		if strings.EqualFold(v.EnumName(), constant) {
			return v, true
		}
	}
	return nil, false
}

// ResolveType implements Resolver.
func (r *Registry) ResolveType(name string) (TypeRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.types[name]
	return ref, ok
}

// EnumTypes lists the registered enumeration names, sorted.
func (r *Registry) EnumTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeNames lists the registered type names, sorted.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ============================================================
// YAML registry files
// ============================================================

// RegistryFile is the on-disk form of a registry:
//
//	enums:
//	  shapes.Kind: [CIRCLE, SQUARE]
//	types: [shapes.Polygon]
type RegistryFile struct {
	Enums map[string][]string `yaml:"enums"`
	Types []string            `yaml:"types"`
}

// Load reads a YAML registry file and adds its declarations to r.
func (r *Registry) Load(in io.Reader) error {
	var file RegistryFile
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("attr: decode registry: %w", err)
	}
	if err := file.validate(); err != nil {
		return err
	}
	for name, constants := range file.Enums {
		r.RegisterEnum(name, constants...)
	}
	for _, name := range file.Types {
		r.RegisterType(name)
	}
	return nil
}

// validate checks the whole file so that Load registers all of it or
// nothing.
func (f *RegistryFile) validate() error {
	for name := range f.Enums {
		if name == "" {
			return fmt.Errorf("attr: registry: empty enumeration name")
		}
	}
	for _, name := range f.Types {
		if name == "" {
			return fmt.Errorf("attr: registry: empty type name")
		}
	}
	return nil
}

// LoadRegistry builds a new registry from a YAML registry file.
func LoadRegistry(in io.Reader) (*Registry, error) {
	r := NewRegistry()
	if err := r.Load(in); err != nil {
		return nil, err
	}
	return r, nil
}
