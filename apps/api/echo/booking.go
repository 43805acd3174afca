package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/enrollment"
	"github.com/arisha-glich/class-gecko-backend/core/trial"
	"github.com/arisha-glich/class-gecko-backend/core/waitlist"
)

// bookingService is shared by enrollments, trials & waitlist entries:
// lists & writes are scoped to the caller, single reads are not.
type bookingService[T, N, U any] interface {
	Create(ctx context.Context, userID string, n N) (T, error)
	Query(ctx context.Context, userID string) ([]T, error)
	QueryByClass(ctx context.Context, classID int) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Update(ctx context.Context, userID string, id int, u U) (T, error)
	Delete(ctx context.Context, userID string, id int) error
}

type bookingAPI[T, N, U any] struct {
	handlerDeps
	res      resource
	svc      bookingService[T, N, U]
	notFound error
}

func registerBookingAPI[T, N, U any](g router, path string, api *bookingAPI[T, N, U]) {
	bg := g.Group(path)
	bg.POST("", api.create)
	bg.GET("", api.query)
	bg.GET("/class/:classId", queryByClass[T](api.res, api.svc, "classId", class.ErrNotFound))
	bg.GET("/:id", api.retrieve)
	bg.PATCH("/:id", api.update)
	bg.DELETE("/:id", api.destroy)
}

func registerEnrollmentAPI(g router, deps handlerDeps, svc *enrollment.Service) {
	registerBookingAPI(g, "/enrollments", &bookingAPI[class.Booking, enrollment.NewEnrollment, enrollment.UpdateEnrollment]{
		handlerDeps: deps,
		res:         resource{one: "Enrollment", many: "Enrollments"},
		svc:         svc,
		notFound:    enrollment.ErrNotFound,
	})
}

func registerTrialAPI(g router, deps handlerDeps, svc *trial.Service) {
	registerBookingAPI(g, "/trials", &bookingAPI[class.Trial, trial.NewTrial, trial.UpdateTrial]{
		handlerDeps: deps,
		res:         resource{one: "Trial", many: "Trials"},
		svc:         svc,
		notFound:    trial.ErrNotFound,
	})
}

func registerWaitlistAPI(g router, deps handlerDeps, svc *waitlist.Service) {
	registerBookingAPI(g, "/waitlist", &bookingAPI[class.Waitlist, waitlist.NewEntry, waitlist.UpdateEntry]{
		handlerDeps: deps,
		res:         resource{one: "Waitlist entry", many: "Waitlist entries"},
		svc:         svc,
		notFound:    waitlist.ErrNotFound,
	})
}

func (api *bookingAPI[T, N, U]) create(ctx echo.Context) error {
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

func (api *bookingAPI[T, N, U]) query(ctx echo.Context) error {
	objs, err := api.svc.Query(ctx.Request().Context(), ctxUserID(ctx))
	if err != nil {
		return failed(err, api.res.listOp())
	}
	return ok(ctx, api.res.listMsg(), objs)
}

func (api *bookingAPI[T, N, U]) retrieve(ctx echo.Context) error {
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

func (api *bookingAPI[T, N, U]) update(ctx echo.Context) error {
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

func (api *bookingAPI[T, N, U]) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, api.notFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctxUserID(ctx), id); err != nil {
		return failed(err, api.res.op("delete"))
	}
	return ok(ctx, api.res.msg("deleted"), nil)
}
