package web

import "github.com/gofiber/fiber/v2"

// expose controls whether 500 responses carry the underlying error text.
// Disabled in production so internals never leak to clients.
var expose = true

// ExposeErrors toggles verbatim error messages on 500 responses.
func ExposeErrors(v bool) {
	expose = v
}

// Success writes a {success: true, ...} envelope merged with data.
func Success(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(body)
}

// Fail writes a {success: false, message} envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// Error writes a 500 response. The error text is included only when error
// exposure is on.
func Error(c *fiber.Ctx, err error) error {
	message := "internal server error"
	if expose && err != nil {
		message = err.Error()
	}
	return Fail(c, fiber.StatusInternalServerError, message)
}
