package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core/commission"
)

type commissionApi struct {
	handlerDeps
	svc *commission.Service
}

// registerCommissionAPI registers the platform commissions. Admins only.
func registerCommissionAPI(g router, deps handlerDeps, svc *commission.Service) {
	api := commissionApi{handlerDeps: deps, svc: svc}

	cg := g.Group("/commissions")
	cg.GET("", api.query)
	cg.POST("/global", api.createGlobal)
	cg.POST("/organization", api.createForBusiness)
	cg.GET("/business/:businessId", api.resolve)
	cg.GET("/:id", api.retrieve)
	cg.PATCH("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

// query accepts ?businessId=, ?isActive=, ?page= & ?limit=.
func (api *commissionApi) query(ctx echo.Context) error {
	pq, err := bindPageQuery(ctx)
	if err != nil {
		return err
	}
	var filter commission.QueryFilter
	if filter.BusinessID, err = queryInt(ctx, "businessId"); err != nil {
		return err
	}
	if filter.IsActive, err = queryBool(ctx, "isActive"); err != nil {
		return err
	}

	page, err := api.svc.Query(ctx.Request().Context(), filter, pq)
	if err != nil {
		return failed(err, "retrieve commissions")
	}
	return ok(ctx, "Commissions retrieved successfully", page)
}

func (api *commissionApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, commission.ErrNotFound)
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return failed(err, "retrieve commission")
	}
	return ok(ctx, "Commission retrieved successfully", c)
}

func (api *commissionApi) createGlobal(ctx echo.Context) error {
	var data commission.NewCommission
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	c, err := api.svc.CreateGlobal(ctx.Request().Context(), data)
	if err != nil {
		return failed(err, "create global commission")
	}
	return created(ctx, "Global commission created successfully", c)
}

func (api *commissionApi) createForBusiness(ctx echo.Context) error {
	var data commission.NewBusinessCommission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBusinessCommission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	c, err := api.svc.CreateForBusiness(ctx.Request().Context(), data)
	if err != nil {
		return failed(err, "create organization commission")
	}
	return created(ctx, "Organization commission created successfully", c)
}

func (api *commissionApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, commission.ErrNotFound)
	if err != nil {
		return err
	}
	var data commission.UpdateCommission
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return failed(err, "update commission")
	}
	return ok(ctx, "Commission updated successfully", c)
}

func (api *commissionApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, commission.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return failed(err, "delete commission")
	}
	return ok(ctx, "Commission deleted successfully", nil)
}

// resolve returns the commission the business pays for ?country= & ?currency= (US & USD by default).
func (api *commissionApi) resolve(ctx echo.Context) error {
	businessID, err := intParam(ctx, "businessId", commission.ErrBusinessNotFound)
	if err != nil {
		return err
	}
	country, currency := ctx.QueryParam("country"), ctx.QueryParam("currency")
	if country == "" {
		country = commission.DefaultCountry
	}
	if currency == "" {
		currency = commission.DefaultCurrency
	}
	res, err := api.svc.ResolveForBusiness(ctx.Request().Context(), businessID, country, currency)
	if err != nil {
		return failed(err, "retrieve business commission")
	}
	return ok(ctx, "Business commission retrieved successfully", res)
}
