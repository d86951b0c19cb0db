package screen

import (
	"context"
	"sync"

	"github.com/trezcool/carnet/core/remote"
)

// List is a list screen: it loads T and derives the rows to display from it and the current filter.
// Rows are derived anew on every call; no server round-trip is made when the filter changes.
type List[T any, R any] struct {
	res    *remote.Resource[T]
	derive func(data T, filter string) []R

	mu     sync.Mutex
	filter string
}

func NewList[T any, R any](res *remote.Resource[T], derive func(T, string) []R) *List[T, R] {
	return &List[T, R]{res: res, derive: derive}
}

func (l *List[T, R]) Load(ctx context.Context) remote.State[T] { return l.res.Load(ctx) }

// Refresh re-runs the fetch (pull-to-refresh, retry).
func (l *List[T, R]) Refresh(ctx context.Context) remote.State[T] { return l.res.Refresh(ctx) }

func (l *List[T, R]) State() remote.State[T] { return l.res.State() }

// SetFilter changes the filter (class level, search text...).
func (l *List[T, R]) SetFilter(filter string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = filter
}

func (l *List[T, R]) Filter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Rows returns the rows to display, or nil when nothing has been loaded yet.
func (l *List[T, R]) Rows() []R {
	state := l.res.State()
	if !state.HasData {
		return nil
	}
	return l.derive(state.Data, l.Filter())
}

// Close drops any fetch in flight.
func (l *List[T, R]) Close() { l.res.Close() }
