package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

const validationFailed = "Validation failed"

// opError is an unexpected error of a named operation, reported as "Failed to <op>".
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Cause() error  { return e.err }
func (e *opError) Unwrap() error { return e.err }

// failed names the operation of err. Known causes (not found, conflict...) still map to their own status.
func failed(err error, op string) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

type envelope struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func ok(ctx echo.Context, msg string, data interface{}) error {
	return ctx.JSON(http.StatusOK, envelope{Message: msg, Success: true, Data: data})
}

func created(ctx echo.Context, msg string, data interface{}) error {
	return ctx.JSON(http.StatusCreated, envelope{Message: msg, Success: true, Data: data})
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var body errorBody

		// the operation name of an opError is kept while looking for a known cause
		op := "process request"
		var oe *opError
		if errors.As(err, &oe) {
			op = oe.op
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, isHTTP := origErr.Internal.(*echo.HTTPError); isHTTP {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, isStr := origErr.Message.(string); isStr {
				body.Message = msg
			} else {
				body.Message = http.StatusText(code)
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			body.Message = origErr.Error()
		case *core.ConflictError:
			code = http.StatusConflict
			body.Message = origErr.Error()
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			body.Message = validationFailed
			body.Errors = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				body.Errors[vErr.Field()] = vErr.Translate(translator)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			body.Message = validationFailed
			body.Errors = make(map[string]string, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				body.Errors[fErr.Field] = fErr.Error
			}
			if len(origErr.Fields) == 0 {
				body.Message = origErr.Error()
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			body.Message = "Failed to " + op

			usr, _ := getContextUser(ctx)
			logger.Error(body.Message, errors.Wrap(err, body.Message), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
