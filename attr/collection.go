package attr

import (
	"slices"
	"strings"

	"go.uber.org/zap"
)

// ============================================================
// Events
// ============================================================

// EventKind identifies a change in a Collection.
type EventKind uint8

const (
	EventAdded EventKind = iota
	EventChanged
	EventRemoved
	EventRenamed
	EventCleared
)

var eventKindNames = [...]string{"added", "changed", "removed", "renamed", "cleared"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event describes one change. Old and New are copies and may be nil:
// Added has no Old, Removed has no New and Cleared has neither. Renamed
// carries the previous name in OldName.
type Event struct {
	Kind    EventKind
	Name    string
	OldName string
	Old     *Value
	New     *Value
}

// Listener receives collection events synchronously.
type Listener func(Event)

// ============================================================
// Collection
// ============================================================

// Collection is a set of attributes keyed by name, ignoring case.
// A Collection is not safe for concurrent use.
type Collection struct {
	attrs     map[string]*Attribute
	listeners []Listener
	log       *zap.Logger
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithLogger logs collection events at debug level.
func WithLogger(l *zap.Logger) CollectionOption {
	return func(c *Collection) {
		if l != nil {
			c.log = l
		}
	}
}

// WithListener registers l at construction.
func WithListener(l Listener) CollectionOption {
	return func(c *Collection) {
		c.AddListener(l)
	}
}

// NewCollection creates an empty collection.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{
		attrs: make(map[string]*Attribute),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddListener registers l. Nil listeners are ignored.
func (c *Collection) AddListener(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

func (c *Collection) fire(e Event) {
	c.log.Debug("attribute "+e.Kind.String(),
		zap.String("name", e.Name),
		zap.String("old_name", e.OldName),
		zap.Stringer("old", e.Old),
		zap.Stringer("new", e.New))
	for _, l := range c.listeners {
		l(e)
	}
}

// ============================================================
// Writes
// ============================================================

// Set stores raw under name with the variant raw classifies as. It returns
// a copy of the stored attribute, or nil when the stored value is already
// equal to raw with the same variant.
func (c *Collection) Set(name string, raw any) (*Attribute, error) {
	return c.put(name, Of(raw))
}

// SetAttribute stores a copy of a under its own name.
func (c *Collection) SetAttribute(a *Attribute) (*Attribute, error) {
	if a == nil {
		return nil, ErrInvalidAttribute
	}
	return c.put(a.name, Copy(&a.Value))
}

func (c *Collection) put(name string, v *Value) (*Attribute, error) {
	if name == "" {
		return nil, ErrInvalidAttribute
	}
	k := key(name)
	prev, ok := c.attrs[k]
	if ok && prev.typ() == v.typ() && prev.assigned == v.assigned && prev.Value.Equal(v) {
		return nil, nil
	}
	stored := NewAttributeFrom(name, v)
	if ok {
		// the first spelling of a name is kept
		stored.name = prev.name
	}
	c.attrs[k] = stored
	if ok {
		c.fire(Event{Kind: EventChanged, Name: stored.name, Old: &prev.Value, New: Copy(v)})
	} else {
		c.fire(Event{Kind: EventAdded, Name: stored.name, New: Copy(v)})
	}
	return stored.Clone(), nil
}

// SetAttributeType retypes the named attribute with Cast semantics: a
// payload that cannot be converted is replaced by the default of to. It
// returns nil when name is absent or already holds to.
func (c *Collection) SetAttributeType(name string, to Variant) *Attribute {
	prev, ok := c.attrs[key(name)]
	if !ok || prev.typ() == to {
		return nil
	}
	next := prev.Clone()
	next.Cast(to)
	c.attrs[key(name)] = next
	c.fire(Event{Kind: EventChanged, Name: next.name, Old: &prev.Value, New: Copy(&next.Value)})
	return next.Clone()
}

// Remove deletes the named attribute and reports whether it existed.
func (c *Collection) Remove(name string) bool {
	k := key(name)
	prev, ok := c.attrs[k]
	if !ok {
		return false
	}
	delete(c.attrs, k)
	c.fire(Event{Kind: EventRemoved, Name: prev.name, Old: &prev.Value})
	return true
}

// RemoveAll empties the collection and reports whether it held anything.
func (c *Collection) RemoveAll() bool {
	if len(c.attrs) == 0 {
		return false
	}
	clear(c.attrs)
	c.fire(Event{Kind: EventCleared})
	return true
}

// Rename moves the attribute oldName to newName. An existing newName is
// replaced only when overwrite is set; the replaced attribute fires a
// Removed event before the Renamed one.
func (c *Collection) Rename(oldName, newName string, overwrite bool) bool {
	if oldName == "" || newName == "" || oldName == newName {
		return false
	}
	oldKey, newKey := key(oldName), key(newName)
	src, found := c.attrs[oldKey]
	if !found {
		return false
	}
	if oldKey == newKey {
		// case-only change
		src.name = newName
		c.fire(Event{Kind: EventRenamed, Name: newName, OldName: oldName, New: Copy(&src.Value)})
		return true
	}
	dst, taken := c.attrs[newKey]
	if taken && !overwrite {
		return false
	}
	delete(c.attrs, oldKey)
	src.name = newName
	c.attrs[newKey] = src
	if taken {
		c.fire(Event{Kind: EventRemoved, Name: dst.name, Old: &dst.Value})
	}
	c.fire(Event{Kind: EventRenamed, Name: newName, OldName: oldName, New: Copy(&src.Value)})
	return true
}

// AddAll stores every entry of m, keeping the attributes m does not name.
func (c *Collection) AddAll(m map[string]any) error {
	for _, name := range sortedKeys(m) {
		if _, err := c.Set(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// SetAll makes the collection hold exactly the entries of m.
func (c *Collection) SetAll(m map[string]any) error {
	keep := make(map[string]bool, len(m))
	for name := range m {
		if name == "" {
			return ErrInvalidAttribute
		}
		keep[key(name)] = true
	}
	for _, name := range c.Names() {
		if !keep[key(name)] {
			c.Remove(name)
		}
	}
	return c.AddAll(m)
}

func sortedKeys(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.SortFunc(names, CompareNames)
	return names
}

// ============================================================
// Reads
// ============================================================

// Len returns the number of attributes.
func (c *Collection) Len() int {
	return len(c.attrs)
}

// Has reports whether name is present.
func (c *Collection) Has(name string) bool {
	_, ok := c.attrs[key(name)]
	return ok
}

// Get returns a copy of the named value.
func (c *Collection) Get(name string) (*Value, bool) {
	a, ok := c.attrs[key(name)]
	if !ok {
		return nil, false
	}
	return Copy(&a.Value), true
}

// GetOrDefault returns the named value converted to the variant of def, or
// def itself when name is absent. A nil def returns the stored value as is.
func (c *Collection) GetOrDefault(name string, def *Value) *Value {
	a, ok := c.attrs[key(name)]
	if !ok {
		return def
	}
	v := Copy(&a.Value)
	if def != nil && def.typ() != v.typ() {
		v.CastAndSet(def.typ(), v)
	}
	return v
}

// Attribute returns a copy of the named attribute.
func (c *Collection) Attribute(name string) (*Attribute, bool) {
	a, ok := c.attrs[key(name)]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Names returns the attribute names in CompareNames order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.attrs))
	for _, a := range c.attrs {
		names = append(names, a.name)
	}
	slices.SortFunc(names, CompareNames)
	return names
}

// Attributes returns copies of every attribute in name order.
func (c *Collection) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(c.attrs))
	for _, a := range c.attrs {
		out = append(out, a.Clone())
	}
	slices.SortFunc(out, CompareAttributes)
	return out
}

// AttributesByType groups copies of the attributes by variant.
func (c *Collection) AttributesByType() map[Variant][]*Attribute {
	out := make(map[Variant][]*Attribute)
	for _, a := range c.Attributes() {
		out[a.typ()] = append(out[a.typ()], a)
	}
	return out
}

// ToMap returns the payload of every attribute keyed by its name. Absent
// payloads map to nil.
func (c *Collection) ToMap() map[string]any {
	out := make(map[string]any, len(c.attrs))
	for _, a := range c.attrs {
		out[a.name] = payloadOf(&a.Clone().Value)
	}
	return out
}

// Clone returns an independent copy with the same logger and no listeners.
func (c *Collection) Clone() *Collection {
	out := &Collection{
		attrs: make(map[string]*Attribute, len(c.attrs)),
		log:   c.log,
	}
	for k, a := range c.attrs {
		out.attrs[k] = a.Clone()
	}
	return out
}

// Flush reports whether pending writes reached their store. The collection
// lives in memory, so it always succeeds.
func (c *Collection) Flush() bool {
	return true
}
