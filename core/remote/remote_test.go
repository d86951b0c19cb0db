package remote_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/remote"
	"github.com/trezcool/carnet/tests"
)

var errBoom = errors.New("boom")

func TestResource_Load(t *testing.T) {
	logger := new(testutil.Logger)
	fail := false
	res := remote.New(func(context.Context) (string, error) {
		if fail {
			return "", errBoom
		}
		return "awa", nil
	}, remote.WithErrorMessage[string]("Échec"), remote.WithLogger[string](logger))

	assert.Equal(t, remote.Idle, res.State().Status)

	state := res.Load(context.Background())
	assert.Equal(t, remote.Success, state.Status)
	assert.True(t, state.HasData)
	assert.Equal(t, "awa", state.Data)

	// a failed refresh keeps the data of the last successful cycle
	fail = true
	state = res.Refresh(context.Background())
	assert.Equal(t, remote.Failure, state.Status)
	assert.Equal(t, "Échec", state.Message)
	assert.ErrorIs(t, state.Err, errBoom)
	assert.True(t, state.HasData)
	assert.Equal(t, "awa", state.Data)
	assert.Equal(t, []string{"Échec: boom"}, logger.Logs("error"))

	// retry clears the error
	fail = false
	state = res.Refresh(context.Background())
	assert.Equal(t, remote.Success, state.Status)
	assert.NoError(t, state.Err)
	assert.Empty(t, state.Message)
}

func TestResource_Load_staleResponseDropped(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   int
		started = make(chan struct{})
		release = make(chan struct{})
	)
	res := remote.New(func(context.Context) (string, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()
		if call == 1 {
			close(started)
			<-release
			return "stale", nil
		}
		return "fresh", nil
	})

	done := make(chan remote.State[string])
	go func() { done <- res.Load(context.Background()) }()
	<-started

	fresh := res.Load(context.Background())
	require.Equal(t, "fresh", fresh.Data)

	close(release)
	first := <-done
	assert.Equal(t, "fresh", first.Data, "the superseded cycle must return the current state")
	assert.Equal(t, "fresh", res.State().Data)
	assert.Equal(t, fresh.Seq, res.State().Seq)
}

func TestResource_Close(t *testing.T) {
	started := make(chan struct{})
	res := remote.New(func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	done := make(chan remote.State[int])
	go func() { done <- res.Load(context.Background()) }()
	<-started
	res.Close()
	<-done

	state := res.State()
	assert.Equal(t, remote.Idle, state.Status)
	assert.NoError(t, state.Err, "the result of a closed cycle must be dropped")
}

func TestResource_Set(t *testing.T) {
	var statuses []remote.Status
	res := remote.NewItem(func(context.Context, int) (string, error) { return "old", nil }, 1,
		remote.OnChange(func(s remote.State[string]) { statuses = append(statuses, s.Status) }),
	)
	res.Load(context.Background())
	res.Set("new")

	assert.Equal(t, "new", res.State().Data)
	assert.Equal(t, []remote.Status{remote.Loading, remote.Success, remote.Success}, statuses)
}

func TestNewList(t *testing.T) {
	var gotPage core.Page
	res := remote.NewList(func(_ context.Context, page core.Page) ([]int, error) {
		gotPage = page
		return nil, nil
	}, core.Page{Skip: 20, Limit: 20})

	state := res.Load(context.Background())
	assert.Equal(t, core.Page{Skip: 20, Limit: 20}, gotPage)
	assert.NotNil(t, state.Data)
	assert.Empty(t, state.Data)
}
