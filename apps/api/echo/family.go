package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/student"
)

// familyApi serves the families of the caller's organization (the organization id is the owner's user id).
type familyApi struct {
	handlerDeps
	svc *family.Service
}

func registerFamilyAPI(g router, deps handlerDeps, svc *family.Service) {
	api := familyApi{handlerDeps: deps, svc: svc}

	fg := g.Group("/families")
	fg.POST("", api.create)
	fg.GET("", api.query)
	fg.GET("/:id", api.retrieve)
	fg.PATCH("/:id", api.update)
	fg.DELETE("/:id", api.destroy)
	fg.PATCH("/:id/status", api.setStatus)
	fg.GET("/:id/children", api.children)
	fg.GET("/:id/payments", api.payments)
	fg.POST("/:id/students", api.addStudent)
}

func (api *familyApi) create(ctx echo.Context) error {
	var data family.NewFamily
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	res, err := api.svc.Create(ctx.Request().Context(), ctxUserID(ctx), data)
	if err != nil {
		return failed(err, "create family")
	}
	return created(ctx, "Family created successfully", res)
}

// query accepts ?search=, ?status=, ?ordering= (eg. "familyName,-createdAt"), ?page= & ?limit=.
func (api *familyApi) query(ctx echo.Context) error {
	pq, err := bindPageQuery(ctx)
	if err != nil {
		return err
	}
	var ord Ordering
	ord.Bind(ctx)
	filter := family.QueryFilter{
		Search:   ctx.QueryParam("search"),
		Status:   ctx.QueryParam("status"),
		Ordering: ord.Orderings,
	}

	page, err := api.svc.Query(ctx.Request().Context(), ctxUserID(ctx), filter, pq)
	if err != nil {
		return failed(err, "fetch families")
	}
	return ok(ctx, "Families retrieved successfully", page)
}

func (api *familyApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	detail, err := api.svc.Get(ctx.Request().Context(), ctxUserID(ctx), id)
	if err != nil {
		return failed(err, "fetch family")
	}
	return ok(ctx, "Family retrieved successfully", detail)
}

func (api *familyApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	var data family.UpdateFamily
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	detail, err := api.svc.Update(ctx.Request().Context(), ctxUserID(ctx), id, data)
	if err != nil {
		return failed(err, "update family")
	}
	return ok(ctx, "Family updated successfully", detail)
}

func (api *familyApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctxUserID(ctx), id); err != nil {
		return failed(err, "delete family")
	}
	return ok(ctx, "Family deleted successfully", nil)
}

func (api *familyApi) setStatus(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	var data family.UpdateStatus
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	fam, err := api.svc.SetStatus(ctx.Request().Context(), ctxUserID(ctx), id, data.Status)
	if err != nil {
		return failed(err, "update family status")
	}
	return ok(ctx, "Family status updated successfully", fam)
}

func (api *familyApi) children(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	kids, err := api.svc.Children(ctx.Request().Context(), ctxUserID(ctx), id)
	if err != nil {
		return failed(err, "fetch children")
	}
	return ok(ctx, "Children retrieved successfully", kids)
}

func (api *familyApi) payments(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	statement, err := api.svc.Payments(ctx.Request().Context(), ctxUserID(ctx), id)
	if err != nil {
		return failed(err, "fetch payments")
	}
	return ok(ctx, "Payments retrieved successfully", statement)
}

func (api *familyApi) addStudent(ctx echo.Context) error {
	id, err := idParam(ctx, family.ErrNotFound)
	if err != nil {
		return err
	}
	var data student.NewStudent
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	s, err := api.svc.AddStudent(ctx.Request().Context(), ctxUserID(ctx), id, data)
	if err != nil {
		return failed(err, "add student")
	}
	return created(ctx, "Student added successfully", s)
}
