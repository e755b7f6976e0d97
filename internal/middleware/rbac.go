package middleware

import (
	"github.com/gofiber/fiber/v2"
)

func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.HasRole(role) {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

func GetCurrentUserRole(c *fiber.Ctx) string {
	user := GetCurrentUser(c)
	if user == nil {
		return ""
	}
	return user.Role
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetCurrentUserRole(c) == "admin"
}

func IsAnalyst(c *fiber.Ctx) bool {
	role := GetCurrentUserRole(c)
	return role == "analyst" || role == "admin"
}
