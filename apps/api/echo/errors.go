package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/exam"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/core/subject"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "Not Found")

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

func isNotFound(err error) bool {
	switch errors.Cause(err) {
	case student.ErrNotFound, subject.ErrNotFound, exam.ErrNotFound, grade.ErrNotFound:
		return true
	}
	return false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Validation errors are answered with 422 and the field errors as `detail`.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var detail interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			detail = origErr.Message
		default:
			switch {
			case core.IsValidation(err):
				code = http.StatusUnprocessableEntity
				if fldErrs := core.FieldMessages(err, translator); len(fldErrs) > 0 {
					detail = fldErrs
				} else {
					detail = origErr.Error()
				}
			case isNotFound(err):
				code = errHttpNotFound.Code
				detail = errHttpNotFound.Message
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				detail = msg
				if logger != nil {
					logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
						"method":    ctx.Request().Method,
						"path":      ctx.Request().URL.Path,
						"requestID": ctx.Response().Header().Get(echo.HeaderXRequestID),
					})
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			detail = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, ErrorResponse{Detail: detail})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
