package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/student"
)

// studentApi reaches the students of the caller's organization, through their family.
type studentApi struct {
	handlerDeps
	svc *student.Service
}

func registerStudentAPI(g router, deps handlerDeps, svc *student.Service) {
	api := studentApi{handlerDeps: deps, svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/family/:familyId", api.queryByFamily)
	sg.GET("/:id", api.retrieve)
	sg.PATCH("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.Query(ctx.Request().Context(), ctxUserID(ctx))
	if err != nil {
		return failed(err, "fetch students")
	}
	return ok(ctx, "Students retrieved successfully", students)
}

func (api *studentApi) queryByFamily(ctx echo.Context) error {
	familyID, err := intParam(ctx, "familyId", family.ErrNotFound)
	if err != nil {
		return err
	}
	students, err := api.svc.QueryByFamily(ctx.Request().Context(), ctxUserID(ctx), familyID)
	if err != nil {
		return failed(err, "fetch students")
	}
	return ok(ctx, "Students retrieved successfully", students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, student.ErrNotFound)
	if err != nil {
		return err
	}
	s, err := api.svc.Get(ctx.Request().Context(), ctxUserID(ctx), id)
	if err != nil {
		return failed(err, "fetch student")
	}
	return ok(ctx, "Student retrieved successfully", s)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := idParam(ctx, student.ErrNotFound)
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := api.bindValid(ctx, &data); err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), ctxUserID(ctx), id, data)
	if err != nil {
		return failed(err, "update student")
	}
	return ok(ctx, "Student updated successfully", s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx, student.ErrNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctxUserID(ctx), id); err != nil {
		return failed(err, "delete student")
	}
	return ok(ctx, "Student deleted successfully", nil)
}
