package primitives

// Keyed is implemented by anything stored in a Collection.
type Keyed[K comparable] interface {
	Key() K
}

// Collection is an insertion-ordered map. Replacing an existing key keeps
// its position. It is not safe for concurrent use.
type Collection[K comparable, V Keyed[K]] struct {
	items []V
	index map[K]int
}

func NewCollection[K comparable, V Keyed[K]]() *Collection[K, V] {
	return &Collection[K, V]{index: make(map[K]int)}
}

// Load rebuilds the collection from items. Later duplicates replace earlier ones.
func (c *Collection[K, V]) Load(items []V) {
	c.Clear()
	for _, it := range items {
		c.ReplaceOrInsert(it)
	}
}

func (c *Collection[K, V]) ReplaceOrInsert(v V) {
	if c.index == nil {
		c.index = make(map[K]int)
	}
	k := v.Key()
	if i, ok := c.index[k]; ok {
		c.items[i] = v
		return
	}
	c.index[k] = len(c.items)
	c.items = append(c.items, v)
}

// Remove deletes k and reports whether it was present.
func (c *Collection[K, V]) Remove(k K) bool {
	i, ok := c.index[k]
	if !ok {
		return false
	}
	copy(c.items[i:], c.items[i+1:])
	var zero V
	c.items[len(c.items)-1] = zero
	c.items = c.items[:len(c.items)-1]
	delete(c.index, k)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Key()] = j
	}
	return true
}

func (c *Collection[K, V]) Get(k K) (V, bool) {
	if i, ok := c.index[k]; ok {
		return c.items[i], true
	}
	var zero V
	return zero, false
}

func (c *Collection[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

func (c *Collection[K, V]) Len() int {
	return len(c.items)
}

func (c *Collection[K, V]) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Collection[K, V]) First() (V, bool) {
	if len(c.items) == 0 {
		var zero V
		return zero, false
	}
	return c.items[0], true
}

// Items returns a copy in insertion order.
func (c *Collection[K, V]) Items() []V {
	out := make([]V, len(c.items))
	copy(out, c.items)
	return out
}

// Reverse returns a copy, most recently inserted first.
func (c *Collection[K, V]) Reverse() []V {
	out := make([]V, len(c.items))
	for i, it := range c.items {
		out[len(c.items)-1-i] = it
	}
	return out
}

func (c *Collection[K, V]) Clear() {
	c.items = nil
	c.index = make(map[K]int)
}
