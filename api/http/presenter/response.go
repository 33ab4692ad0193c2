package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body of every non-2xx reply, and of delete confirmations.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DetailResponse confirms an operation that returns no record.
type DetailResponse = ErrorResponse

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, detail string) error {
	return JSON(c, status, ErrorResponse{Detail: detail})
}

func Detail(c *fiber.Ctx, detail string) error {
	return JSON(c, fiber.StatusOK, DetailResponse{Detail: detail})
}
