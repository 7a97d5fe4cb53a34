package models

import "github.com/gofiber/fiber/v2"

// APIResponse is the success envelope returned by every endpoint.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the failure envelope. StatusCode always equals the HTTP status.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewAPIResponse builds a success envelope. Success is derived from the status.
func NewAPIResponse(status int, data interface{}, message string) APIResponse {
	if message == "" {
		message = "Success"
	}
	return APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < fiber.StatusBadRequest,
	}
}

// Respond writes data wrapped in the success envelope.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(NewAPIResponse(status, data, message))
}

// Page is one page of a list result. TotalItems counts the whole filtered set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPage assembles a page, computing the page count from total and limit.
func NewPage[T any](items []T, page, limit int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Page[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: pages,
	}
}
