package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
)

const (
	skipParam  = "skip"
	limitParam = "limit"
	idParam    = "id"

	errNotInt = "value is not a valid integer"
)

// Pagination binds the `skip` & `limit` query params.
type Pagination struct {
	core.Page
}

func (p *Pagination) Bind(ctx echo.Context, defaultLimit int) error {
	var fldErrs []core.FieldError
	for param, dst := range map[string]*int{skipParam: &p.Skip, limitParam: &p.Limit} {
		val := ctx.QueryParam(param)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: param, Error: errNotInt})
			continue
		}
		*dst = n
	}
	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}
	p.Page = p.Page.Clean(defaultLimit)
	return nil
}

// bindID parses the `id` path param.
func bindID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param(idParam))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: idParam, Error: errNotInt})
	}
	return id, nil
}

// bindBody decodes the JSON body into i; a malformed body is a validation error.
func bindBody(ctx echo.Context, i interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, i); err != nil {
		return core.NewValidationError(errors.New("invalid JSON body"))
	}
	return nil
}
