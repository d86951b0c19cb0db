package restapi

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// APIError is a non-2xx response of the API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Detail     interface{} // `detail` of the response body: a message, or field errors
	Body       []byte
}

func newAPIError(code int, method, path string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: code, Method: method, Path: path, Body: body}
	var resp struct {
		Detail interface{} `json:"detail"`
	}
	if err := sonic.Unmarshal(body, &resp); err == nil {
		apiErr.Detail = resp.Detail
	}
	return apiErr
}

func (err *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", err.Method, err.Path, err.StatusCode, http.StatusText(err.StatusCode))
	if detail, ok := err.Detail.(string); ok && detail != "" {
		msg += ": " + detail
	}
	return msg
}

// FieldErrors returns the field errors of a 422 response.
func (err *APIError) FieldErrors() map[string]string {
	fields, ok := err.Detail.(map[string]interface{})
	if !ok {
		return nil
	}
	fldErrs := make(map[string]string, len(fields))
	for k, v := range fields {
		fldErrs[k] = fmt.Sprint(v)
	}
	return fldErrs
}

// StatusCode returns the HTTP status of err, or 0 when err is not an *APIError.
func StatusCode(err error) int {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
