package validator

import (
	"net/mail"
	"restaurant-directory/core/controller"
	"restaurant-directory/modules/auth/dto"
	"strings"
)

const minPasswordLength = 8

func ValidateRegisterRequest(req *dto.RegisterRequest) *controller.ValidationResult {
	result := &controller.ValidationResult{}
	if strings.TrimSpace(req.Name) == "" {
		result.Add("name", "name is required")
	} else if len(req.Name) > 255 {
		result.Add("name", "name must be at most 255 characters")
	}
	validateEmail(result, req.Email)
	if len(req.Password) < minPasswordLength {
		result.Add("password", "password must be at least 8 characters")
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *controller.ValidationResult {
	result := &controller.ValidationResult{}
	validateEmail(result, req.Email)
	if req.Password == "" {
		result.Add("password", "password is required")
	}
	return result
}

func ValidateRefreshTokenRequest(req *dto.RefreshTokenRequest) *controller.ValidationResult {
	result := &controller.ValidationResult{}
	if strings.TrimSpace(req.RefreshToken) == "" {
		result.Add("refresh_token", "refresh_token is required")
	}
	return result
}

func validateEmail(result *controller.ValidationResult, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		result.Add("email", "email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		result.Add("email", "email is invalid")
	}
}
