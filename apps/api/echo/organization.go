package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

type organizationApi struct {
	handlerDeps
	svc *organization.Service
}

func registerOrganizationAPI(g router, deps handlerDeps, svc *organization.Service) {
	api := organizationApi{handlerDeps: deps, svc: svc}

	og := g.Group("/organization")
	og.GET("", api.retrieve)
	og.PATCH("", api.updateProfile)
}

func (api *organizationApi) retrieve(ctx echo.Context) error {
	settings, err := api.svc.Get(ctx.Request().Context(), ctxUserID(ctx))
	if err != nil {
		return failed(err, "fetch organization")
	}
	return ok(ctx, "Organization retrieved successfully", echo.Map{"organization": settings})
}

func (api *organizationApi) updateProfile(ctx echo.Context) error {
	var data organization.UpdateProfile
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	profile, err := api.svc.UpdateProfile(ctx.Request().Context(), ctxUserID(ctx), data)
	if err != nil {
		return failed(err, "update organization")
	}
	return ok(ctx, "Organization updated successfully", profile)
}
