package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSettlesAllSlots(t *testing.T) {
	producers := map[string]Producer{
		"stats": func(ctx context.Context) (any, error) {
			return 42, nil
		},
		"top": func(ctx context.Context) (any, error) {
			return []string{"a", "b"}, nil
		},
		"analytics": func(ctx context.Context) (any, error) {
			return nil, errors.New("service unavailable")
		},
	}

	results := Run(context.Background(), producers)

	require.Len(t, results, 3)
	assert.Equal(t, 42, results["stats"].Value)
	require.NoError(t, results["stats"].Err)
	assert.Equal(t, []string{"a", "b"}, results["top"].Value)
	require.EqualError(t, results["analytics"].Err, "service unavailable")
	assert.Nil(t, results["analytics"].Value)
}

func TestRunIsConcurrent(t *testing.T) {
	// three producers each sleeping 50ms should settle well under 150ms
	sleepy := func(ctx context.Context) (any, error) {
		time.Sleep(50 * time.Millisecond)
		return "done", nil
	}
	producers := map[string]Producer{"a": sleepy, "b": sleepy, "c": sleepy}

	start := time.Now()
	results := Run(context.Background(), producers)
	elapsed := time.Since(start)

	require.Len(t, results, 3)
	assert.Less(t, elapsed, 140*time.Millisecond, "producers must run concurrently")
}

func TestRunEmpty(t *testing.T) {
	results := Run(context.Background(), nil)
	assert.Empty(t, results)
}

func TestValue(t *testing.T) {
	results := map[string]Result{
		"count":  {Value: int64(7)},
		"failed": {Err: errors.New("boom")},
		"typed":  {Value: "text"},
	}

	n, ok := Value[int64](results, "count")
	require.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = Value[int64](results, "failed")
	assert.False(t, ok, "failed slot yields no value")

	_, ok = Value[int64](results, "typed")
	assert.False(t, ok, "mismatched type yields no value")

	_, ok = Value[int64](results, "missing")
	assert.False(t, ok)
}
