package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
)

// resourceApi serves the CRUD endpoints of one resource:
// T is the resource, N its creation payload and U its update payload.
type resourceApi[T any, N any, U any] struct {
	listFunc     func(context.Context, core.Page) ([]T, error)
	getFunc      func(context.Context, int) (T, error)
	createFunc   func(context.Context, N) (T, error)
	updateFunc   func(context.Context, int, U) (T, error)
	deleteFunc   func(context.Context, int) error
	defaultLimit int
}

func registerResource[T any, N any, U any](g *echo.Group, api resourceApi[T, N, U]) {
	g.GET("", api.query)
	g.POST("", api.create)

	// detail endpoints
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api resourceApi[T, N, U]) query(ctx echo.Context) error {
	var page Pagination
	if err := page.Bind(ctx, api.defaultLimit); err != nil {
		return err
	}
	items, err := api.listFunc(ctx.Request().Context(), page.Page)
	if err != nil {
		return errors.Wrap(err, "listing")
	}
	if items == nil {
		items = []T{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api resourceApi[T, N, U]) create(ctx echo.Context) error {
	var data N
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	obj, err := api.createFunc(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api resourceApi[T, N, U]) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.getFunc(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "retrieving")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api resourceApi[T, N, U]) update(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	var data U
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	obj, err := api.updateFunc(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api resourceApi[T, N, U]) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err := api.deleteFunc(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting")
	}
	return ctx.NoContent(http.StatusNoContent)
}
