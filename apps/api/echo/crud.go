package echoapi

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

// resource names the messages of an API: "Camp created successfully", "Failed to fetch camps"...
type resource struct {
	one  string
	many string
}

func (r resource) msg(verb string) string { return r.one + " " + verb + " successfully" }
func (r resource) listMsg() string        { return r.many + " retrieved successfully" }
func (r resource) op(verb string) string  { return verb + " " + strings.ToLower(r.one) }
func (r resource) listOp() string         { return "fetch " + strings.ToLower(r.many) }

// ownedService is the CRUD of the resources only visible to the user who created them.
type ownedService[T, N, U any] interface {
	Create(ctx context.Context, userID string, n N) (T, error)
	Query(ctx context.Context, userID string) ([]T, error)
	Get(ctx context.Context, userID string, id int) (T, error)
	Update(ctx context.Context, userID string, id int, u U) (T, error)
	Delete(ctx context.Context, userID string, id int) error
}

type ownedAPI[T, N, U any] struct {
	handlerDeps
	res      resource
	svc      ownedService[T, N, U]
	notFound error
}

func registerOwnedAPI[T, N, U any](g router, path string, api *ownedAPI[T, N, U]) *echo.Group {
	rg := g.Group(path)
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/:id", api.retrieve)
	rg.PATCH("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
	return rg
}

func (api *ownedAPI[T, N, U]) create(ctx echo.Context) error {
	var data N
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	obj, err := api.svc.Create(ctx.Request().Context(), ctxUserID(ctx), data)
	if err != nil {
		return failed(err, api.res.op("create"))
	}
	return created(ctx, api.res.msg("created"), obj)
}

func (api *ownedAPI[T, N, U]) query(ctx echo.Context) error {
	objs, err := api.svc.Query(ctx.Request().Context(), ctxUserID(ctx))
	if err != nil {
		return failed(err, api.res.listOp())
	}
	return ok(ctx, api.res.listMsg(), objs)
}

func (api *ownedAPI[T, N, U]) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	obj, err := api.svc.Get(ctx.Request().Context(), ctxUserID(ctx), id)
	if err != nil {
		return failed(err, api.res.op("fetch"))
	}
	return ok(ctx, api.res.msg("retrieved"), obj)
}

func (api *ownedAPI[T, N, U]) update(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	var data U
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	obj, err := api.svc.Update(ctx.Request().Context(), ctxUserID(ctx), id, data)
	if err != nil {
		return failed(err, api.res.op("update"))
	}
	return ok(ctx, api.res.msg("updated"), obj)
}

func (api *ownedAPI[T, N, U]) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctxUserID(ctx), id); err != nil {
		return failed(err, api.res.op("delete"))
	}
	return ok(ctx, api.res.msg("deleted"), nil)
}

// sharedService is the CRUD of the resources visible to every signed in user.
type sharedService[T, N, U any] interface {
	Create(ctx context.Context, n N) (T, error)
	Query(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Update(ctx context.Context, id int, u U) (T, error)
	Delete(ctx context.Context, id int) error
}

type sharedAPI[T, N, U any] struct {
	handlerDeps
	res      resource
	svc      sharedService[T, N, U]
	notFound error
}

func registerSharedAPI[T, N, U any](g router, path string, api *sharedAPI[T, N, U]) *echo.Group {
	rg := g.Group(path)
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/:id", api.retrieve)
	rg.PATCH("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
	return rg
}

func (api *sharedAPI[T, N, U]) create(ctx echo.Context) error {
	var data N
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return failed(err, api.res.op("create"))
	}
	return created(ctx, api.res.msg("created"), obj)
}

func (api *sharedAPI[T, N, U]) query(ctx echo.Context) error {
	objs, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return failed(err, api.res.listOp())
	}
	return ok(ctx, api.res.listMsg(), objs)
}

func (api *sharedAPI[T, N, U]) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	obj, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return failed(err, api.res.op("fetch"))
	}
	return ok(ctx, api.res.msg("retrieved"), obj)
}

func (api *sharedAPI[T, N, U]) update(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	var data U
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	obj, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return failed(err, api.res.op("update"))
	}
	return ok(ctx, api.res.msg("updated"), obj)
}

func (api *sharedAPI[T, N, U]) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return failed(err, api.res.op("delete"))
	}
	return ok(ctx, api.res.msg("deleted"), nil)
}

// byParentService lists the rows attached to a class (or a drop-in class).
type byParentService[T any] interface {
	QueryByClass(ctx context.Context, classID int) ([]T, error)
}

func queryByClass[T any](res resource, svc byParentService[T], param string, notFound error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		classID, err := intParam(ctx, param, notFound)
		if err != nil {
			return err
		}
		objs, err := svc.QueryByClass(ctx.Request().Context(), classID)
		if err != nil {
			return failed(err, res.listOp())
		}
		return ok(ctx, res.listMsg(), objs)
	}
}
