package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type updateRoleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=customer staff admin"`
}

// Register godoc
// @Summary  Register a customer account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "account"
// @Success  201 {object} model.User
// @Failure  409 {object} errorPayload
// @Router   /auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} map[string]any
// @Failure  401 {object} errorPayload
// @Router   /auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Login successful", "token": res.Token, "user": res.User})
	}
}

func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		u, err := svc.Me(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// ForgotPassword answers the same way whether or not the email is registered.
func ForgotPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req forgotPasswordRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := svc.ForgotPassword(c.UserContext(), req.Email); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "If the email is registered, a reset link has been sent"})
	}
}

func ResetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetPasswordRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := svc.ResetPassword(c.UserContext(), c.Params("token"), req.Password); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Password has been reset"})
	}
}

func UpdateUserRole(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req updateRoleRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		u, err := svc.UpdateRole(c.UserContext(), id, req.Role)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}
