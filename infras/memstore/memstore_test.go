package memstore_test

import (
	"context"
	"sync"
	"testing"

	"hostel/infras/memstore"

	"github.com/stretchr/testify/assert"
)

func TestCollectionInsertionOrder(t *testing.T) {
	store := memstore.New()
	col := memstore.NewCollection[string]()

	err := store.Update(context.Background(), func(tx *memstore.Tx) error {
		col.Put(tx, "b", "second")
		col.Put(tx, "a", "first")
		col.Put(tx, "c", "third")

		// Replacement must not move the record.
		col.Put(tx, "a", "first-replaced")

		return nil
	})
	assert.NoError(t, err)

	err = store.View(context.Background(), func(tx *memstore.Tx) error {
		assert.Equal(t, []string{"second", "first-replaced", "third"}, col.All(tx))
		assert.Equal(t, 3, col.Len(tx))

		item, ok := col.Get(tx, "a")
		assert.True(t, ok)
		assert.Equal(t, "first-replaced", item)

		_, ok = col.Get(tx, "missing")
		assert.False(t, ok)

		return nil
	})
	assert.NoError(t, err)
}

func TestUpdateIsExclusive(t *testing.T) {
	store := memstore.New()
	col := memstore.NewCollection[int]()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			_ = store.Update(context.Background(), func(tx *memstore.Tx) error {
				count := col.Len(tx)
				col.Put(tx, string(rune('a'+n%26))+string(rune('0'+n/26)), count)

				return nil
			})
		}(i)
	}

	wg.Wait()

	err := store.View(context.Background(), func(tx *memstore.Tx) error {
		assert.Equal(t, 50, col.Len(tx))

		return nil
	})
	assert.NoError(t, err)
}

func TestPutOutsideWriteTransactionPanics(t *testing.T) {
	store := memstore.New()
	col := memstore.NewCollection[int]()

	err := store.View(context.Background(), func(tx *memstore.Tx) error {
		assert.Panics(t, func() {
			col.Put(tx, "x", 1)
		})

		return nil
	})
	assert.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	store := memstore.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Update(ctx, func(tx *memstore.Tx) error {
		t.Fatal("update body should not run with a cancelled context")

		return nil
	})
	assert.Error(t, err)
}
