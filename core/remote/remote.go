// Package remote holds the data-fetch primitive shared by every screen:
// a Resource tracks the loading, error and data state of one remote list or item.
//
// Each fetch cycle is tagged with a sequence number. Starting a cycle cancels the one in
// flight, and the result of a superseded cycle is dropped so that a slow, older response
// never overwrites fresher state.
package remote

import (
	"context"
	"sync"

	"github.com/trezcool/carnet/core"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a Resource.
// On failure, Data keeps the result of the last successful cycle (see HasData).
type State[T any] struct {
	Status  Status
	Data    T
	HasData bool
	Err     error
	Message string // user-facing error message
	Seq     uint64 // fetch cycle that produced this state
}

// Fetcher loads the data of a Resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

type Option[T any] func(*Resource[T])

// WithErrorMessage sets the user-facing message of failed cycles.
func WithErrorMessage[T any](msg string) Option[T] {
	return func(r *Resource[T]) { r.errMsg = msg }
}

// WithLogger logs failed cycles.
func WithLogger[T any](logger core.Logger) Option[T] {
	return func(r *Resource[T]) { r.logger = logger }
}

// OnChange registers fn to be called with every new state.
func OnChange[T any](fn func(State[T])) Option[T] {
	return func(r *Resource[T]) { r.onChange = fn }
}

type Resource[T any] struct {
	fetch    Fetcher[T]
	errMsg   string
	logger   core.Logger
	onChange func(State[T])

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State[T]
}

func New[T any](fetch Fetcher[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		fetch:  fetch,
		errMsg: DefaultErrorMessage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultErrorMessage is shown when a cycle fails and no message was configured.
const DefaultErrorMessage = "Échec du chargement des données"

// NewList returns a Resource loading one page of a remote list.
func NewList[T any](list func(context.Context, core.Page) ([]T, error), page core.Page, opts ...Option[[]T]) *Resource[[]T] {
	return New(func(ctx context.Context) ([]T, error) {
		items, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}, opts...)
}

// NewItem returns a Resource loading the remote item identified by id.
func NewItem[T any](get func(context.Context, int) (T, error), id int, opts ...Option[T]) *Resource[T] {
	return New(func(ctx context.Context) (T, error) {
		return get(ctx, id)
	}, opts...)
}

// State returns the current state.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Load runs a fetch cycle and returns the resulting state.
// If another cycle started in the meantime, the result is dropped and the current state is returned.
func (r *Resource[T]) Load(ctx context.Context) State[T] {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.state.Status = Loading
	r.state.Err = nil
	r.state.Message = ""
	r.state.Seq = seq
	loading := r.state
	r.mu.Unlock()
	r.notify(loading)

	data, err := r.fetch(ctx)
	cancel()

	r.mu.Lock()
	if seq != r.seq { // superseded
		current := r.state
		r.mu.Unlock()
		return current
	}
	r.cancel = nil
	if err != nil {
		r.state.Status = Failure
		r.state.Err = err
		r.state.Message = r.errMsg
	} else {
		r.state = State[T]{Status: Success, Data: data, HasData: true, Seq: seq}
	}
	state := r.state
	r.mu.Unlock()

	if err != nil && r.logger != nil {
		r.logger.Error(r.errMsg, err)
	}
	r.notify(state)
	return state
}

// Refresh re-runs the same fetch (pull-to-refresh, retry button).
func (r *Resource[T]) Refresh(ctx context.Context) State[T] {
	return r.Load(ctx)
}

// Set replaces the data with a value obtained elsewhere (eg: the response of an update).
func (r *Resource[T]) Set(data T) {
	r.mu.Lock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state = State[T]{Status: Success, Data: data, HasData: true, Seq: r.seq}
	state := r.state
	r.mu.Unlock()
	r.notify(state)
}

// Close cancels the cycle in flight and makes sure its result is dropped.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.state.Status == Loading {
		if r.state.HasData {
			r.state.Status = Success
		} else {
			r.state.Status = Idle
		}
	}
}

func (r *Resource[T]) notify(s State[T]) {
	if r.onChange != nil {
		r.onChange(s)
	}
}
