package screen

import (
	"context"
	"sync"

	"github.com/trezcool/carnet/core"
)

// Create is the screen of a creation form.
type Create[U any, T any] struct {
	create func(context.Context, U) (T, error)
	msgs   Messages
	deps   Deps

	mu         sync.Mutex
	submitting bool
	fieldErrs  map[string]string
	errMsg     string
}

func NewCreate[U any, T any](create func(context.Context, U) (T, error), msgs Messages, deps Deps) *Create[U, T] {
	return &Create[U, T]{create: create, msgs: msgs, deps: deps}
}

// Submit validates and posts the form, then navigates back.
// On failure the form stays open: field errors for invalid payloads (nothing is sent),
// an alert for remote failures.
func (c *Create[U, T]) Submit(ctx context.Context, payload U) (T, error) {
	c.mu.Lock()
	c.submitting = true
	c.fieldErrs = nil
	c.errMsg = ""
	c.mu.Unlock()

	created, err := c.create(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		if core.IsValidation(err) {
			c.fieldErrs = core.FieldMessages(err, c.deps.Translator)
			return created, err
		}
		c.errMsg = c.msgs.CreateFailed
		c.deps.logError(c.msgs.CreateFailed, err)
		c.deps.alert(c.msgs.ErrorTitle, c.msgs.CreateFailed)
		return created, err
	}
	c.deps.alert(c.msgs.SuccessTitle, c.msgs.Created)
	c.deps.back()
	return created, nil
}

func (c *Create[U, T]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Create[U, T]) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs
}

// Error returns the message of the last remote failure, if any.
func (c *Create[U, T]) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}
