package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	mentors []*models.Mentor
	err     error
	calls   atomic.Int32
	delay   time.Duration

	// started receives once per call; block holds the call until closed.
	started chan struct{}
	block   chan struct{}
}

func (f *fakeSource) ListMentors(ctx context.Context) ([]*models.Mentor, error) {
	f.mu.Lock()
	snapshot := f.mentors
	f.mu.Unlock()

	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return snapshot, nil
}

func (f *fakeSource) setMentors(mentors []*models.Mentor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mentors = mentors
}

func sampleMentors() []*models.Mentor {
	return []*models.Mentor{
		{ID: "a", Nome: "Ana Silva", Disponivel: true},
		{ID: "b", Nome: "Bruno", Disponivel: false},
	}
}

func TestMentorCache_GetLoadsOnceUntilInvalidated(t *testing.T) {
	src := &fakeSource{mentors: sampleMentors()}
	mc := NewMentorCache(src, 60, false)
	ctx := context.Background()

	assert.False(t, mc.IsReady())

	got, err := mc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, mc.IsReady())

	_, err = mc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	mc.Invalidate()
	_, err = mc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())

	meta, err := mc.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, 2, meta.MentorCount)
}

func TestMentorCache_GetByID(t *testing.T) {
	src := &fakeSource{mentors: sampleMentors()}
	mc := NewMentorCache(src, 60, false)

	m, found, err := mc.GetByID(context.Background(), "b")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Bruno", m.Nome)

	_, found, err = mc.GetByID(context.Background(), "zzz")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestMentorCache_LoadErrorIsReturned(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	mc := NewMentorCache(src, 60, false)

	_, err := mc.Get(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, mc.IsReady())

	assert.Error(t, mc.Warm(context.Background()))
}

func TestMentorCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	src := &fakeSource{mentors: sampleMentors(), delay: 50 * time.Millisecond}
	mc := NewMentorCache(src, 60, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mc.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestMentorCache_Disabled(t *testing.T) {
	src := &fakeSource{mentors: sampleMentors()}
	mc := NewMentorCache(src, 60, true)

	assert.True(t, mc.IsReady())
	_, _ = mc.Get(context.Background())
	_, _ = mc.Get(context.Background())
	_, _, _ = mc.GetByID(context.Background(), "a")
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestMentorCache_InvalidateDuringLoadDiscardsStaleList(t *testing.T) {
	src := &fakeSource{
		mentors: []*models.Mentor{{ID: "a", Nome: "Ana Silva", Disponivel: true}},
		started: make(chan struct{}, 2),
		block:   make(chan struct{}),
	}
	mc := NewMentorCache(src, 60, false)
	ctx := context.Background()

	type result struct {
		mentors []*models.Mentor
		err     error
	}
	first := make(chan result, 1)
	go func() {
		m, err := mc.Get(ctx)
		first <- result{m, err}
	}()
	<-src.started

	// Ana is chosen while the first load is still reading the old rows.
	src.setMentors([]*models.Mentor{{ID: "a", Nome: "Ana Silva", Disponivel: false}})
	mc.Invalidate()

	second := make(chan result, 1)
	go func() {
		m, err := mc.Get(ctx)
		second <- result{m, err}
	}()
	<-src.started
	close(src.block)

	r1 := <-first
	require.NoError(t, r1.err)
	assert.True(t, r1.mentors[0].Disponivel)

	r2 := <-second
	require.NoError(t, r2.err)
	assert.False(t, r2.mentors[0].Disponivel)

	got, err := mc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, got[0].Disponivel)

	m, found, err := mc.GetByID(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, m.Disponivel)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestMentorCache_InvalidateDuringLoadForcesReload(t *testing.T) {
	src := &fakeSource{
		mentors: []*models.Mentor{{ID: "a", Nome: "Ana Silva", Disponivel: true}},
		started: make(chan struct{}, 2),
		block:   make(chan struct{}),
	}
	mc := NewMentorCache(src, 60, false)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := mc.Get(ctx)
		done <- err
	}()
	<-src.started

	src.setMentors([]*models.Mentor{{ID: "a", Nome: "Ana Silva", Disponivel: false}})
	mc.Invalidate()
	close(src.block)
	require.NoError(t, <-done)

	got, err := mc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, got[0].Disponivel)
	assert.Equal(t, int32(2), src.calls.Load())
}
