package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sume/estra/internal/endpoint"
)

type fakeSource struct {
	calls int
	data  endpoint.Summary
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context) (endpoint.Summary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func TestGet_FetchesOnceWithinTTL(t *testing.T) {
	src := &fakeSource{data: endpoint.Summary{"kwh": 42.0}}
	c := New(src, time.Minute)

	data, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit, "first call fetches")
	assert.Equal(t, 42.0, data["kwh"])

	for i := 0; i < 4; i++ {
		data, hit, err = c.Get(context.Background())
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, 42.0, data["kwh"])
	}
	assert.Equal(t, 1, src.calls)
}

func TestGet_RefetchesAfterExpiry(t *testing.T) {
	src := &fakeSource{data: endpoint.Summary{"kwh": 42.0}}
	c := New(src, 20*time.Millisecond)

	_, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	time.Sleep(30 * time.Millisecond)
	_, hit, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit, "an expired entry is a miss, not a hit")

	assert.Equal(t, 2, src.calls)
}

func TestInvalidate_ForcesFetch(t *testing.T) {
	src := &fakeSource{data: endpoint.Summary{"kwh": 42.0}}
	c := New(src, time.Hour)

	_, _, err := c.Get(context.Background())
	require.NoError(t, err)
	c.Invalidate()
	assert.Nil(t, c.Peek())

	_, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, src.calls)
}

func TestGet_PropagatesFetchError(t *testing.T) {
	boom := errors.New("endpoint down")
	src := &fakeSource{err: boom}
	c := New(src, time.Minute)

	_, hit, err := c.Get(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, hit)
	assert.Nil(t, c.Peek())
}

func TestPeek_NilWhenEmptyOrExpired(t *testing.T) {
	src := &fakeSource{data: endpoint.Summary{"kwh": 42.0}}
	c := New(src, 20*time.Millisecond)

	assert.Nil(t, c.Peek())

	_, _, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c.Peek())

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, c.Peek())
}
