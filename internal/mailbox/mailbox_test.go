package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestWins(t *testing.T) {
	m := New[int]()
	assert.False(t, m.HasJob())
	assert.False(t, m.Put(1))
	assert.True(t, m.Put(2))
	assert.True(t, m.HasJob())

	j, ok := m.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, 2, j)
	assert.Nil(t, m.TryTake())
}

func TestTakeBlocksUntilPut(t *testing.T) {
	m := New[string]()
	got := make(chan string, 1)
	go func() {
		j, _ := m.Take(context.Background())
		got <- j
	}()

	time.Sleep(10 * time.Millisecond)
	m.Put("PACKAGE")

	select {
	case j := <-got:
		assert.Equal(t, "PACKAGE", j)
	case <-time.After(time.Second):
		t.Fatal("Take did not return")
	}
}

func TestTakeCancelled(t *testing.T) {
	m := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := m.Take(ctx)
	assert.False(t, ok)
}
