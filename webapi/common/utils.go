// Package common holds the response envelopes and request helpers shared by
// the HTTP handlers.
package common

import (
	"errors"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
	Message  string `json:"message,omitempty"`  // Text suitable for end users
}

var validate = validator.New()

// ProblemDetailsJSON writes err as RFC 9457 problem details. The status is
// derived from err unless given explicitly.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, status ...int) error {
	code := ErrorToStatusCode(err)
	if len(status) > 0 {
		code = status[0]
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   code,
		Instance: c.OriginalURL(),
		Message:  exchange.UserMessage(err),
	}
	if err != nil {
		pd.Detail = err.Error()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			pd.Errors = fields
		}
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(code).JSON(pd)
}

// SuccessResponseJSON writes data in the standard Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var ferr *fiber.Error
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &ferr):
		return ferr.Code
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest
	case errors.Is(err, exchange.ErrInvalidAmount):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, exchange.ErrRatesUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, exchange.ErrNetworkFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns a nil
// pointer along with the result of writing that response.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err)
	}
	return &input, nil
}

// QueryAndValidate is BindAndValidate for query string parameters.
func QueryAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid query parameters", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err)
	}
	return &input, nil
}
