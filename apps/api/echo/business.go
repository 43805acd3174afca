package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/business"
)

type businessApi struct {
	handlerDeps
	svc *business.Service
}

// registerBusinessAPI registers the platform administration of the businesses. Admins only.
func registerBusinessAPI(g router, deps handlerDeps, svc *business.Service) {
	api := businessApi{handlerDeps: deps, svc: svc}

	bg := g.Group("/business")
	bg.GET("", api.query)
	bg.POST("", api.create)
	bg.GET("/:id", api.retrieve)
	bg.PATCH("/:id", api.update)
	bg.PATCH("/:id/commission", api.updateCommission)
	bg.GET("/:id/students", api.students)
	bg.PATCH("/:id/status", api.setStatus)
}

func (api *businessApi) query(ctx echo.Context) error {
	pq, err := bindPageQuery(ctx)
	if err != nil {
		return err
	}
	page, err := api.svc.Query(ctx.Request().Context(), ctx.QueryParam("search"), pq)
	if err != nil {
		return failed(err, "retrieve businesses")
	}
	return ok(ctx, "Businesses retrieved successfully", page)
}

func (api *businessApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, business.ErrNotFound)
	if err != nil {
		return err
	}
	detail, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return failed(err, "retrieve business")
	}
	return ok(ctx, "Business details retrieved successfully", detail)
}

func (api *businessApi) create(ctx echo.Context) error {
	var data business.NewBusiness
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return failed(err, "create business")
	}
	return created(ctx, "Business created successfully", res)
}

func (api *businessApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, business.ErrNotFound)
	if err != nil {
		return err
	}
	var data business.UpdateBusiness
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	res, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return failed(err, "update business")
	}
	return ok(ctx, "Business updated successfully", res)
}

func (api *businessApi) updateCommission(ctx echo.Context) error {
	id, err := idParam(ctx, business.ErrNotFound)
	if err != nil {
		return err
	}
	var data business.UpdateCommission
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	res, err := api.svc.UpdateCommission(ctx.Request().Context(), id, data)
	if err != nil {
		return failed(err, "update business commission")
	}
	return ok(ctx, "Business commission updated successfully", res)
}

func (api *businessApi) students(ctx echo.Context) error {
	id, err := idParam(ctx, business.ErrNotFound)
	if err != nil {
		return err
	}
	pq, err := bindPageQuery(ctx)
	if err != nil {
		return err
	}
	page, err := api.svc.Students(ctx.Request().Context(), id, pq)
	if err != nil {
		return failed(err, "retrieve business students")
	}
	return ok(ctx, "Business students retrieved successfully", page)
}

func (api *businessApi) setStatus(ctx echo.Context) error {
	id, err := idParam(ctx, business.ErrNotFound)
	if err != nil {
		return err
	}
	var data business.UpdateStatus
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	res, err := api.svc.SetStatus(ctx.Request().Context(), id, *data.Status)
	if err != nil {
		return failed(err, "update business status")
	}
	return ok(ctx, "Business status updated successfully", res)
}
