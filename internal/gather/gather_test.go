package gather

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIndexedByInputPosition(t *testing.T) {
	tasks := make([]Task[int], 5)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			// Later tasks finish first to stress completion order.
			time.Sleep(time.Duration(5-i) * time.Millisecond)
			return i * 10, nil
		}
	}

	results := All(context.Background(), tasks)

	require.Len(t, results, 5)
	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, i*10, res.Value)
	}
}

func TestAllFailureDoesNotPoisonSiblings(t *testing.T) {
	tasks := []Task[string]{
		func(ctx context.Context) (string, error) { return "ok", nil },
		func(ctx context.Context) (string, error) { return "", fmt.Errorf("branch failed") },
		func(ctx context.Context) (string, error) { return "also ok", nil },
	}

	results := All(context.Background(), tasks)

	require.Len(t, results, 3)
	assert.Equal(t, "ok", results[0].Value)
	assert.EqualError(t, results[1].Err, "branch failed")
	assert.Equal(t, "also ok", results[2].Value)
}

func TestAllEmpty(t *testing.T) {
	results := All[int](context.Background(), nil)
	assert.Empty(t, results)
}
