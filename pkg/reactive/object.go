package reactive

import (
	"sort"
)

// Object wraps a map[string]any. Reads through Get, Has and Keys are
// tracked; writes through Set and Delete trigger.
type Object struct {
	rt    *Runtime
	id    TargetID
	raw   map[string]any
	mode  mode
	proto *Object
}

// Reactive returns the deep mutable wrapper of m. Nested maps and *[]any
// values read through it are wrapped as well.
func (rt *Runtime) Reactive(m map[string]any) *Object {
	return rt.wrapObject(m, 0)
}

// ShallowReactive returns a wrapper that tracks only top-level keys.
func (rt *Runtime) ShallowReactive(m map[string]any) *Object {
	return rt.wrapObject(m, modeShallow)
}

// Readonly returns a deep readonly view of m. Reads are not tracked.
func (rt *Runtime) Readonly(m map[string]any) *Object {
	return rt.wrapObject(m, modeReadonly)
}

// ShallowReadonly returns a readonly view whose nested values are returned
// as-is.
func (rt *Runtime) ShallowReadonly(m map[string]any) *Object {
	return rt.wrapObject(m, modeShallow|modeReadonly)
}

func (rt *Runtime) wrapObject(m map[string]any, md mode) *Object {
	if m == nil {
		m = make(map[string]any)
	}
	ptr, _ := rawPointer(m)
	key := cacheKey{ptr: ptr, mode: md}
	if w, ok := rt.cache[key].(*Object); ok {
		return w
	}
	o := &Object{
		rt:   rt,
		id:   rt.identify(ptr),
		raw:  m,
		mode: md,
	}
	rt.cache[key] = o
	return o
}

// wrapNested applies deep wrapping to a value read from a deep wrapper.
func (rt *Runtime) wrapNested(v any, md mode) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return v
		}
		return rt.wrapObject(x, md)
	case *[]any:
		if x == nil {
			return v
		}
		return rt.wrapArray(x, md)
	case *Object:
		if md&modeReadonly != 0 && !x.Readonly() {
			return rt.wrapObject(x.raw, md)
		}
	case *Array:
		if md&modeReadonly != 0 && !x.Readonly() {
			return rt.wrapArray(x.raw, md)
		}
	}
	return v
}

// ID returns the target identity shared by every wrapper of the same map.
func (o *Object) ID() TargetID { return o.id }

// Raw returns the wrapped map. Access through it is untracked.
func (o *Object) Raw() map[string]any { return o.raw }

// Readonly reports whether writes are rejected.
func (o *Object) Readonly() bool { return o.mode&modeReadonly != 0 }

// Shallow reports whether nested values are returned unwrapped.
func (o *Object) Shallow() bool { return o.mode&modeShallow != 0 }

// SetPrototype makes reads of missing keys fall back to proto. Writes of
// such keys land on o and trigger only o's subscribers.
func (o *Object) SetPrototype(proto *Object) {
	o.proto = proto
}

// Get returns the value of key, recording the dependency.
func (o *Object) Get(key string) any {
	if !o.Readonly() {
		o.rt.Track(o.id, key)
	}
	v, ok := o.raw[key]
	if !ok && o.proto != nil {
		return o.proto.Get(key)
	}
	if o.Shallow() {
		return v
	}
	return o.rt.wrapNested(v, o.mode)
}

// lookup returns the raw value of key along the prototype chain, untracked.
func (o *Object) lookup(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.raw[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes key. Subscribers are triggered only when the value actually
// changed. Writing to a readonly wrapper returns ErrReadonly and has no
// effect.
func (o *Object) Set(key string, value any) error {
	return o.set(key, value, o)
}

// set performs the write on behalf of receiver. A prototype reached through
// an inherited lookup stores into receiver but never triggers itself, so the
// write is observed once, on the object it was made through.
func (o *Object) set(key string, value any, receiver *Object) error {
	if o.Readonly() {
		err := ErrReadonly.WithDetail("key %q", key)
		o.rt.warn(err)
		return err
	}
	value = ToRaw(value)
	old, found := o.lookup(key)
	_, own := o.raw[key]

	if !own && o.proto != nil {
		if err := o.proto.set(key, value, receiver); err != nil {
			return err
		}
	} else {
		receiver.raw[key] = value
	}

	if receiver != o {
		return nil
	}
	// A brand-new key always changes the key set, even when its value is nil.
	if SameValue(old, value) && found {
		return nil
	}
	kind := ChangeSet
	if !own {
		kind = ChangeAdd
	}
	o.rt.Trigger(o.id, key, kind)
	return nil
}

// Has reports whether key is present, recording the dependency.
func (o *Object) Has(key string) bool {
	if !o.Readonly() {
		o.rt.Track(o.id, key)
	}
	if _, ok := o.raw[key]; ok {
		return true
	}
	if o.proto != nil {
		return o.proto.Has(key)
	}
	return false
}

// Delete removes an own key. Subscribers are triggered only if the key was
// present.
func (o *Object) Delete(key string) error {
	if o.Readonly() {
		err := ErrReadonlyDelete.WithDetail("key %q", key)
		o.rt.warn(err)
		return err
	}
	_, own := o.raw[key]
	delete(o.raw, key)
	if own {
		o.rt.Trigger(o.id, key, ChangeDelete)
	}
	return nil
}

// Keys returns the own keys in sorted order, recording an enumeration
// dependency.
func (o *Object) Keys() []string {
	if !o.Readonly() {
		o.rt.Track(o.id, IterateKey)
	}
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of own keys, recording an enumeration dependency.
func (o *Object) Len() int {
	if !o.Readonly() {
		o.rt.Track(o.id, IterateKey)
	}
	return len(o.raw)
}

// Range calls fn for every own key in sorted order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	for _, k := range o.Keys() {
		if !fn(k, o.Get(k)) {
			return
		}
	}
}
