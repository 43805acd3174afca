package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/dropin"
)

func registerDropInAPI(g router, deps handlerDeps, svcs Services) {
	registerOwnedAPI(g, "/dropin-classes", &ownedAPI[dropin.Class, class.NewSchedule, dropin.UpdateClass]{
		handlerDeps: deps,
		res:         resource{one: "Drop-in class", many: "Drop-in classes"},
		svc:         svcs.DropInClass,
		notFound:    dropin.ErrClassNotFound,
	})

	lessons := resource{one: "Drop-in lesson", many: "Drop-in lessons"}
	lg := registerSharedAPI(g, "/dropin-lessons", &sharedAPI[dropin.Lesson, dropin.NewLesson, dropin.UpdateLesson]{
		handlerDeps: deps,
		res:         lessons,
		svc:         svcs.DropInLesson,
		notFound:    dropin.ErrLessonNotFound,
	})
	lg.GET("/class/:dropInClassId", queryByClass[dropin.Lesson](lessons, svcs.DropInLesson, "dropInClassId", dropin.ErrClassNotFound))

	bookings := resource{one: "Drop-in booking", many: "Drop-in bookings"}
	bg := registerOwnedAPI(g, "/dropin-bookings", &ownedAPI[dropin.Booking, dropin.NewBooking, dropin.UpdateBooking]{
		handlerDeps: deps,
		res:         bookings,
		svc:         svcs.DropInBooking,
		notFound:    dropin.ErrBookingNotFound,
	})
	bg.GET("/class/:dropInClassId", func(ctx echo.Context) error {
		classID, err := intParam(ctx, "dropInClassId", dropin.ErrClassNotFound)
		if err != nil {
			return err
		}
		objs, err := svcs.DropInBooking.QueryByClass(ctx.Request().Context(), ctxUserID(ctx), classID)
		if err != nil {
			return failed(err, bookings.listOp())
		}
		return ok(ctx, bookings.listMsg(), objs)
	})
}
