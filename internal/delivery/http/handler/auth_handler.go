package handler

import (
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"
	ucauth "github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	usr, pair, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Registered", authResponse(&usr, pair))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	usr, pair, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(&usr, pair))
}

// Refresh accepts the refresh token either in the body or as a bearer token.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	}

	pair, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(nil, pair))
}

func authResponse(usr *user.User, pair usecase.TokenPair) dto.AuthResponse {
	res := dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
	if usr != nil {
		u := userResponse(*usr)
		res.User = &u
	}
	return res
}

func userResponse(u user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
