package folio

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herculesvale/vale-service/internal/concurrency"
)

var folioPattern = regexp.MustCompile(`^HV\d{7}$`)

func TestNext_Format(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		code := g.Next()
		assert.Regexp(t, folioPattern, code)
		assert.Len(t, code, 9)
	}
}

func TestNext_UniqueWithinSession(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code := g.Next()
		_, dup := seen[code]
		require.False(t, dup, "duplicate folio %s after %d issues", code, i)
		seen[code] = struct{}{}
	}
}

func TestNext_UniqueUnderConcurrency(t *testing.T) {
	g := NewGenerator()

	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	concurrency.FanOut(context.Background(), workers, func(ctx context.Context, idx int) {
		for i := 0; i < perWorker; i++ {
			code := g.Next()
			mu.Lock()
			seen[code] = struct{}{}
			mu.Unlock()
		}
	})

	assert.Len(t, seen, workers*perWorker)
}
