package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/lesson"
	"github.com/arisha-glich/class-gecko-backend/core/term"
)

type classApi struct {
	handlerDeps
	svc *class.Service
}

func registerClassAPI(g router, deps handlerDeps, svc *class.Service) {
	api := classApi{handlerDeps: deps, svc: svc}

	cg := g.Group("/classes")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/term/:termId", api.queryByTerm)
	cg.GET("/:id", api.retrieve)
	cg.PATCH("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return failed(err, "create class")
	}
	return created(ctx, "Class created successfully", cls)
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return failed(err, "fetch classes")
	}
	return ok(ctx, "Classes retrieved successfully", classes)
}

func (api *classApi) queryByTerm(ctx echo.Context) error {
	termID, err := intParam(ctx, "termId", term.ErrNotFound)
	if err != nil {
		return err
	}
	classes, err := api.svc.QueryByTerm(ctx.Request().Context(), termID)
	if err != nil {
		return failed(err, "fetch classes")
	}
	return ok(ctx, "Classes retrieved successfully", classes)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, class.ErrNotFound)
	if err != nil {
		return err
	}
	cls, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return failed(err, "fetch class")
	}
	return ok(ctx, "Class retrieved successfully", cls)
}

func (api *classApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, class.ErrNotFound)
	if err != nil {
		return err
	}
	var data class.UpdateClass
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	cls, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return failed(err, "update class")
	}
	return ok(ctx, "Class updated successfully", cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, class.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return failed(err, "delete class")
	}
	return ok(ctx, "Class deleted successfully", nil)
}

func registerLessonAPI(g router, deps handlerDeps, svc *lesson.Service) {
	res := resource{one: "Lesson", many: "Lessons"}
	lg := registerSharedAPI(g, "/lessons", &sharedAPI[class.Lesson, lesson.NewLesson, lesson.UpdateLesson]{
		handlerDeps: deps,
		res:         res,
		svc:         svc,
		notFound:    lesson.ErrNotFound,
	})
	lg.GET("/class/:classId", queryByClass[class.Lesson](res, svc, "classId", class.ErrNotFound))
}
