package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/term"
)

type termApi struct {
	handlerDeps
	svc *term.Service
}

func registerTermAPI(g router, deps handlerDeps, svc *term.Service) {
	api := termApi{handlerDeps: deps, svc: svc}

	tg := g.Group("/terms")
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PATCH("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

func (api *termApi) create(ctx echo.Context) error {
	var data term.NewTerm
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	t, err := api.svc.Create(ctx.Request().Context(), ctxUserID(ctx), data)
	if err != nil {
		return failed(err, "create term")
	}
	return created(ctx, "Term created successfully", t)
}

func (api *termApi) query(ctx echo.Context) error {
	terms, err := api.svc.Query(ctx.Request().Context(), ctxUserID(ctx))
	if err != nil {
		return failed(err, "fetch terms")
	}
	return ok(ctx, "Terms retrieved successfully", terms)
}

// retrieve includes the classes, enrollments, waitlist & trials of the term.
func (api *termApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, term.ErrNotFound)
	if err != nil {
		return err
	}
	t, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return failed(err, "fetch term")
	}
	return ok(ctx, "Term retrieved successfully", t)
}

func (api *termApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, term.ErrNotFound)
	if err != nil {
		return err
	}
	var data term.UpdateTerm
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	t, err := api.svc.Update(ctx.Request().Context(), ctxUserID(ctx), id, data)
	if err != nil {
		return failed(err, "update term")
	}
	return ok(ctx, "Term updated successfully", t)
}

func (api *termApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, term.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctxUserID(ctx), id); err != nil {
		return failed(err, "delete term")
	}
	return ok(ctx, "Term deleted successfully", nil)
}
