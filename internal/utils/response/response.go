// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// All responses share one envelope:
//
//	{ "status": "ok",    "msg": "These are the registered users", "results": [...] }
//	{ "status": "ok",    "msg": "Planet added to favorites",      "result": {...} }
//	{ "status": "error", "msg": "user isn't registered" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope.
//
// Result carries a single object, Results a collection. Results is an
// `any` on purpose: an empty non-nil slice still encodes as [] because
// omitempty only drops a nil interface.
type Response struct {
	Status  string `json:"status"`
	Msg     string `json:"msg"`
	Result  any    `json:"result,omitempty"`
	Results any    `json:"results,omitempty"`
}

// Status string constants. Use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK builds a success envelope around a single object.
func OK(msg string, result any) Response {
	return Response{Status: StatusOK, Msg: msg, Result: result}
}

// List builds a success envelope around a collection.
func List(msg string, results any) Response {
	return Response{Status: StatusOK, Msg: msg, Results: results}
}

// Message builds a success envelope that carries only a message.
func Message(msg string) Response {
	return Response{Status: StatusOK, Msg: msg}
}

// GeneralError wraps any Go error into our standard Response shape.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err))
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Msg:    err.Error(),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	{ "status": "error", "msg": "field FirstName is required, field Email must be a valid email address" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "gt", "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be %s %s", e.Field(), comparison(e.ActualTag()), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Msg:    strings.Join(errMessages, ", "),
	}
}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
