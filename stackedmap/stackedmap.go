package stackedmap

// StackedMap is a persistent key-value overlay on top of a data source.
// A StackedMap value is immutable: Put returns a new StackedMap layering
// one more write on its parent, so any number of readers may share a value
// while forks diverge cheaply. Key/value lookups fall through the layer
// chain into the source.
type StackedMap struct {
	src    MapGetter
	parent *StackedMap
	key    any
	value  any
	depth  int
}

// MapGetter defines the getter method of the data source.
type MapGetter func(key any) (value any, exist bool, err error)

// New creates an empty StackedMap over src.
func New(src MapGetter) *StackedMap {
	return &StackedMap{src: src}
}

// Depth returns the number of writes layered over the source.
func (sm *StackedMap) Depth() int {
	return sm.depth
}

// Get gets the value for the given key, consulting layers newest first and
// finally the source. The second return value indicates whether the key
// was found.
func (sm *StackedMap) Get(key any) (any, bool, error) {
	for cur := sm; cur.parent != nil; cur = cur.parent {
		if cur.key == key {
			return cur.value, true, nil
		}
	}
	return sm.src(key)
}

// Put returns a new StackedMap with key bound to value. The receiver is
// left untouched.
func (sm *StackedMap) Put(key, value any) *StackedMap {
	return &StackedMap{
		src:    sm.src,
		parent: sm,
		key:    key,
		value:  value,
		depth:  sm.depth + 1,
	}
}

// Journal traverses all writes newest first, skipping keys shadowed by
// newer writes, so the callback sees each key's effective value exactly
// once. Traversal stops when the callback returns false.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	seen := make(map[any]struct{}, sm.depth)
	for cur := sm; cur.parent != nil; cur = cur.parent {
		if _, ok := seen[cur.key]; ok {
			continue
		}
		seen[cur.key] = struct{}{}
		if !cb(cur.key, cur.value) {
			return
		}
	}
}
