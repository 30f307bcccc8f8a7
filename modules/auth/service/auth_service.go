package service

import (
	"context"
	stderrors "errors"
	"restaurant-directory/core/cache"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/utils"
	"restaurant-directory/modules/auth/dto"
	"restaurant-directory/modules/auth/entity"
	"restaurant-directory/modules/auth/mapper"
	"restaurant-directory/modules/auth/repository"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError)
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	RefreshToken(ctx context.Context, token string) (*dto.TokenResponse, *errors.AppError)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	VerifyAccessToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
	SeedUsers(ctx context.Context) (int, *errors.AppError)
}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

func (service *AuthService) Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existingUser, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if existingUser != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "user with email already exists", nil)
	}

	createdUser, appErr := service.createUser(ctx, requestData.Name, requestData.Email, requestData.Password, constants.RoleUser)
	if appErr != nil {
		return nil, appErr
	}
	return service.issueTokens(createdUser)
}

// Login authenticates by email and password. Failed attempts are counted
// per email; after constants.MaxLoginAttempts the account is locked for
// constants.BlockDuration.
func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	loginKey := constants.RedisKeyLoginAttempt + strings.ToLower(strings.TrimSpace(requestData.Email))

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire:Error:", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrAccountLocked, "too many failed attempts, try again in 15 minutes", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !utils.ComparePassword(user.Password, requestData.Password) {
		if _, errIncrement := service.cache.IncrementLoginAttempt(ctx, loginKey); errIncrement != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", errIncrement)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to increment login attempt", errIncrement)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}
	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrForbidden, "user not active", nil)
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del:Error:", errDel)
	}

	logger.Info("AuthService:Login", "user_id", user.ID, "role", user.Role)
	return service.issueTokens(user)
}

// Logout revokes token until it would have expired anyway.
func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	errAdd := service.cache.AddToTokenBlacklist(ctx, token, claims.Remaining())
	if errAdd != nil {
		logger.Error("AuthService:Logout:AddToBlacklist:Error:", errAdd)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", errAdd)
	}
	return nil
}

// RefreshToken exchanges a refresh token for a new token pair. The old
// refresh token is revoked so it can only be used once.
func (service *AuthService) RefreshToken(ctx context.Context, token string) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, appErr := service.verify(ctx, token, constants.ScopeTokenRefresh)
	if appErr != nil {
		return nil, appErr
	}

	user, err := service.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not found or inactive", nil)
	}

	if errAdd := service.cache.AddToTokenBlacklist(ctx, token, claims.Remaining()); errAdd != nil {
		logger.Error("AuthService:RefreshToken:AddToBlacklist:Error:", errAdd)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add refresh token to blacklist", errAdd)
	}

	return service.issueTokens(user)
}

func (service *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return mapper.ToUserResponse(user), nil
}

// VerifyAccessToken implements middleware.TokenVerifier.
func (service *AuthService) VerifyAccessToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	return service.verify(ctx, token, constants.ScopeTokenAccess)
}

var defaultUsers = []struct {
	name, email, role string
}{
	{"Admin User", "admin@example.com", constants.RoleAdmin},
	{"Regular User", "user@example.com", constants.RoleUser},
}

const defaultPassword = "password"

// SeedUsers creates the default admin and regular accounts when missing.
func (service *AuthService) SeedUsers(ctx context.Context) (int, *errors.AppError) {
	created := 0
	for _, u := range defaultUsers {
		existing, err := service.repo.GetUserByEmail(ctx, u.email)
		if err != nil {
			return created, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
		}
		if existing != nil {
			continue
		}
		if _, appErr := service.createUser(ctx, u.name, u.email, defaultPassword, u.role); appErr != nil {
			return created, appErr
		}
		created++
	}
	logger.Info("AuthService:SeedUsers", "created", created)
	return created, nil
}

func (service *AuthService) verify(ctx context.Context, token, scope string) (*utils.TokenClaims, *errors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:Verify:IsTokenBlacklisted:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	if claims.Scope != scope {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "wrong token scope", nil)
	}
	return claims, nil
}

func (service *AuthService) createUser(ctx context.Context, name, email, password, role string) (*entity.User, *errors.AppError) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	createdUser, err := service.repo.CreateUser(ctx, &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
	}
	return createdUser, nil
}

func (service *AuthService) issueTokens(user *entity.User) (*dto.TokenResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	var expiresIn int64
	if claims, err := utils.ValidateAndParseToken(accessToken); err == nil {
		expiresIn = int64(claims.Remaining().Seconds())
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		User:         mapper.ToUserResponse(user),
	}, nil
}
