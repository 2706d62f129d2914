package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries an HTTP status alongside the message so the error
// middleware can map service failures to responses.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: fiber.StatusTooManyRequests, Message: message}
}

func NewPaymentRequired(message string) *AppError {
	return &AppError{Code: fiber.StatusPaymentRequired, Message: message}
}

func NewServiceUnavailable(message string) *AppError {
	return &AppError{Code: fiber.StatusServiceUnavailable, Message: message}
}
