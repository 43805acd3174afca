package echoapi

import (
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// handlerDeps are shared by every resource API.
type handlerDeps struct {
	validate   *validator.Validate
	translator ut.Translator
}

// bindValid binds the request body to data and validates it.
func (d handlerDeps) bindValid(ctx echo.Context, data interface{}) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrapf(err, "binding to %T", data)
	}
	return d.validate.Struct(data)
}

// intParam parses the integer path param name. Anything else is notFound.
func intParam(ctx echo.Context, name string, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		return 0, notFound
	}
	return id, nil
}

func idParam(ctx echo.Context, notFound error) (int, error) {
	return intParam(ctx, "id", notFound)
}

func bindPageQuery(ctx echo.Context) (core.PageQuery, error) {
	var pq core.PageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &pq); err != nil {
		return pq, core.NewValidationError(nil, core.FieldError{Field: "page", Error: "page and limit must be integers"})
	}
	pq.Clean()
	return pq, nil
}

// queryInt & queryBool read optional filters; a malformed value is a validation error.
func queryInt(ctx echo.Context, name string) (*int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: name + " must be an integer"})
	}
	return &v, nil
}

func queryBool(ctx echo.Context, name string) (*bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: name + " must be a boolean"})
	}
	return &v, nil
}
