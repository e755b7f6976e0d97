package handler

import (
	"github.com/gofiber/fiber/v2"

	"hidrocascavel/internal/domain"
	"hidrocascavel/internal/middleware"
	"hidrocascavel/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if err == service.ErrEmailExists {
			return middleware.Conflict("Email already registered")
		}
		if err == service.ErrInvalidRole {
			return middleware.BadRequest("Invalid role")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registration successful. Please check your email for verification.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return middleware.Unauthorized("Invalid email or password")
		}
		if err == service.ErrEmailNotVerified {
			return middleware.Forbidden("Email not verified. Please verify your email first.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return middleware.BadRequest("Refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), body.RefreshToken)
	if err != nil {
		return middleware.Unauthorized("Invalid or expired refresh token")
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.BadRequest("Verification token is required")
	}

	if err := h.authService.VerifyEmail(c.Context(), token); err != nil {
		if err == service.ErrInvalidToken || err == service.ErrVerificationTokenExpired {
			return middleware.BadRequest("Invalid or expired verification token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return middleware.BadRequest("Email is required")
	}

	// Same response regardless of whether the email exists.
	_ = h.authService.ResendVerificationEmail(c.Context(), body.Email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email is registered, a verification link has been sent",
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return middleware.BadRequest("Email is required")
	}

	_ = h.authService.RequestPasswordReset(c.Context(), body.Email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email is registered, a password reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Token == "" || body.Password == "" {
		return middleware.BadRequest("Token and new password are required")
	}

	if err := h.authService.ResetPassword(c.Context(), body.Token, body.Password); err != nil {
		if err == service.ErrInvalidToken || err == service.ErrTokenExpired {
			return middleware.BadRequest("Invalid or expired reset token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password reset successfully",
	})
}
