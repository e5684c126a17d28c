package exceptions

import (
	"fmt"
	"runtime"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"dev_message,omitempty"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

// BuildNewCustomError wraps err into a CustomError, recording where the wrap happened.
// err may be nil when the condition itself is the error (e.g. a guard failing).
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			Line:         0,
			FunctionName: "unknown",
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

// IsStatus reports whether err is a CustomError carrying the given HTTP status.
func IsStatus(err error, statusCode int) bool {
	customErr, ok := err.(*CustomError)
	return ok && customErr.StatusCode == statusCode
}

// IsConflict reports whether err represents a booking conflict.
func IsConflict(err error) bool {
	return IsStatus(err, constvars.StatusConflict)
}

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	return IsStatus(err, constvars.StatusNotFound)
}
