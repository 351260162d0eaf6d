package memstore

// Collection is an insertion-ordered map of records keyed by id. It carries
// no locking of its own; every access must happen inside Store.View or
// Store.Update, which is why each method takes a *Tx.
type Collection[T any] struct {
	items map[string]T
	order []string
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{
		items: map[string]T{},
	}
}

// Put inserts or replaces the record under id. First insertion fixes the
// record's position in iteration order; replacement keeps it.
func (c *Collection[T]) Put(tx *Tx, id string, item T) {
	if !tx.Writable() {
		panic("memstore: Put requires a write transaction")
	}

	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}

	c.items[id] = item
}

func (c *Collection[T]) Get(_ *Tx, id string) (T, bool) {
	item, ok := c.items[id]

	return item, ok
}

// All returns a fresh slice of every record in insertion order. The copy
// means callers can hold the result after the transaction ends.
func (c *Collection[T]) All(_ *Tx) []T {
	items := make([]T, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}

	return items
}

func (c *Collection[T]) Len(_ *Tx) int {
	return len(c.order)
}
