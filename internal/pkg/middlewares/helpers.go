package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

func Chained(router fiber.Router, middlewares ...fiber.Handler) {
	for _, middleware := range middlewares {
		router.Use(middleware)
	}
}
