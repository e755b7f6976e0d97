package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	IPAddressContextKey = "ip_address"
	UserAgentContextKey = "user_agent"
)

// RequestInfo records the caller's IP and User-Agent so reviews and role
// changes can be attributed in the audit log. Honors CF-Connecting-IP when the
// API sits behind Cloudflare.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			ip = c.IP()
		}

		c.Locals(IPAddressContextKey, ip)
		c.Locals(UserAgentContextKey, c.Get("User-Agent"))

		return c.Next()
	}
}

func GetIPAddress(c *fiber.Ctx) *string {
	ip, ok := c.Locals(IPAddressContextKey).(string)
	if !ok || ip == "" {
		return nil
	}
	return &ip
}

func GetUserAgent(c *fiber.Ctx) *string {
	ua, ok := c.Locals(UserAgentContextKey).(string)
	if !ok || ua == "" {
		return nil
	}
	return &ua
}
