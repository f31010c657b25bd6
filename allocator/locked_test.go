package allocator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocked_Concurrent(t *testing.T) {
	l := NewLocked(newTestAllocator(t, 1<<12))

	const numWorkers = 8
	const numRounds = 200

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < numRounds; i++ {
				block, ok, err := l.Allocate(1 + (w+i)%16)
				assert.NoError(t, err)
				if !ok {
					continue
				}
				found, ok := l.Lookup(block.Handle)
				assert.True(t, ok)
				assert.Equal(t, block, found)
				assert.True(t, l.Free(block.Handle))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, []Block{}, l.Blocks())
	assert.Equal(t, []NodeInfo{{Offset: 0, Size: 1 << 12}}, l.Snapshot())
	assert.Equal(t, "Memory Status:\nBlock[offset=0, size=4096, allocated=false]\n", l.Status())
	assert.Equal(t, 0, l.Stats().Used)
}
