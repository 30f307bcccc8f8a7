package controller

import (
	"restaurant-directory/core/controller"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/middleware"
	"restaurant-directory/core/utils"
	"restaurant-directory/modules/auth/dto"
	"restaurant-directory/modules/auth/service"
	"restaurant-directory/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Register godoc
// @Summary Register a user account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account"
// @Success 201 {object} controller.SuccessResponse{data=dto.TokenResponse}
// @Failure 409 {object} controller.ErrorResponse
// @Router /auth/register [post]
func (controller *AuthController) Register(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RegisterRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	registerResponse, err := controller.AuthService.Register(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.CreatedResponse(c, registerResponse, "Register success")
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} controller.SuccessResponse{data=dto.TokenResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, err := controller.AuthService.Login(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, loginResponse, "Login success")
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /auth/logout [post]
func (controller *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := utils.GetTokenFromHeader(c)
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if errLogout := controller.AuthService.Logout(ctx, token); errLogout != nil {
		return controller.ErrorResponse(c, errLogout)
	}

	return controller.SuccessResponse(c, nil, "Logout success")
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} controller.SuccessResponse{data=dto.TokenResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/refresh [post]
func (controller *AuthController) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RefreshTokenRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRefreshTokenRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	tokens, err := controller.AuthService.RefreshToken(ctx, requestData.RefreshToken)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, tokens, "Refresh token success")
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse{data=dto.UserResponse}
// @Router /private/me [get]
func (controller *AuthController) Me(c echo.Context) error {
	ctx := c.Request().Context()

	tokenData, ok := middleware.GetTokenData(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "authentication required")
	}

	user, err := controller.AuthService.Me(ctx, tokenData.UserID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, user, "Get profile success")
}
