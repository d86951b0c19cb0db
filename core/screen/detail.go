package screen

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/remote"
)

var (
	ErrNotLoaded  = errors.New("item not loaded")
	ErrNotEditing = errors.New("not in edit mode")
)

// Detail is the screen of one item: read-only display toggling to an editable form,
// with update and delete actions.
type Detail[T any, U any] struct {
	id     int
	item   *remote.Resource[T]
	update func(context.Context, int, U) (T, error)
	remove func(context.Context, int) error
	msgs   Messages
	deps   Deps

	mu        sync.Mutex
	mode      Mode
	fieldErrs map[string]string
}

func NewDetail[T any, U any](
	id int,
	get func(context.Context, int) (T, error),
	update func(context.Context, int, U) (T, error),
	remove func(context.Context, int) error,
	msgs Messages,
	deps Deps,
) *Detail[T, U] {
	return &Detail[T, U]{
		id: id,
		item: remote.NewItem(get, id,
			remote.WithErrorMessage[T](msgs.LoadFailed),
			remote.WithLogger[T](deps.Logger),
		),
		update: update,
		remove: remove,
		msgs:   msgs,
		deps:   deps,
	}
}

func (d *Detail[T, U]) ID() int { return d.id }

// Load fetches the item; a failure is alerted.
func (d *Detail[T, U]) Load(ctx context.Context) remote.State[T] {
	state := d.item.Load(ctx)
	if state.Status == remote.Failure {
		d.deps.alert(d.msgs.ErrorTitle, state.Message)
	}
	return state
}

func (d *Detail[T, U]) Refresh(ctx context.Context) remote.State[T] { return d.Load(ctx) }

func (d *Detail[T, U]) State() remote.State[T] { return d.item.State() }

func (d *Detail[T, U]) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// FieldErrors returns the validation errors of the last submission.
func (d *Detail[T, U]) FieldErrors() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fieldErrs
}

// Edit switches to the editable form.
func (d *Detail[T, U]) Edit() error {
	if !d.item.State().HasData {
		return ErrNotLoaded
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == Viewing {
		d.mode = Editing
	}
	return nil
}

// Cancel leaves the editable form without saving.
func (d *Detail[T, U]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == Editing {
		d.mode = Viewing
		d.fieldErrs = nil
	}
}

// Submit saves the form. An invalid payload keeps the form open with field errors and is never sent;
// a failed update is alerted and keeps the form open.
func (d *Detail[T, U]) Submit(ctx context.Context, payload U) error {
	d.mu.Lock()
	if d.mode != Editing {
		d.mu.Unlock()
		return ErrNotEditing
	}
	d.mode = Submitting
	d.fieldErrs = nil
	d.mu.Unlock()

	updated, err := d.update(ctx, d.id, payload)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.mode = Editing
		if core.IsValidation(err) {
			d.fieldErrs = core.FieldMessages(err, d.deps.Translator)
			return err
		}
		d.deps.logError(d.msgs.UpdateFailed, err)
		d.deps.alert(d.msgs.ErrorTitle, d.msgs.UpdateFailed)
		return err
	}
	d.item.Set(updated)
	d.mode = Viewing
	d.deps.alert(d.msgs.SuccessTitle, d.msgs.Updated)
	return nil
}

// Delete asks for confirmation, then deletes the item and navigates back.
// It reports whether the item was deleted; on failure the screen stays as is.
func (d *Detail[T, U]) Delete(ctx context.Context) (bool, error) {
	if !d.deps.confirm(d.msgs.ConfirmDeleteTitle, d.msgs.ConfirmDelete) {
		return false, nil
	}
	if err := d.remove(ctx, d.id); err != nil {
		d.deps.logError(d.msgs.DeleteFailed, err)
		d.deps.alert(d.msgs.ErrorTitle, d.msgs.DeleteFailed)
		return false, err
	}
	d.item.Close()
	d.deps.alert(d.msgs.SuccessTitle, d.msgs.Deleted)
	d.deps.back()
	return true, nil
}

// Close drops any fetch in flight (the screen is leaving).
func (d *Detail[T, U]) Close() { d.item.Close() }
