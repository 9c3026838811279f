package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/config"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务，管理员、商户、顾客共用
type AuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	tenantRepo   repository.TenantRepository
	profileRepo  repository.CustomerProfileRepository
	loginLogRepo repository.UserLoginLogRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, tenantRepo repository.TenantRepository, profileRepo repository.CustomerProfileRepository, loginLogRepo repository.UserLoginLogRepository) *AuthService {
	return &AuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
		profileRepo:  profileRepo,
		loginLogRepo: loginLogRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register 注册用户，商户和顾客角色注册时顺带建立对应档案
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" {
		return nil, ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidCredentials
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = constants.RoleCustomer
	}
	if role != constants.RoleTenant && role != constants.RoleCustomer {
		// 管理员只能通过初始化或后台创建
		return nil, ErrInvalidRole
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	switch role {
	case constants.RoleTenant:
		tenant := &models.Tenant{
			UserID:   user.ID,
			ShopName: username + "'s Shop",
			Category: constants.TenantCategoryDefault,
		}
		if err := s.tenantRepo.Create(tenant); err != nil {
			return nil, err
		}
	case constants.RoleCustomer:
		profile := &models.CustomerProfile{UserID: user.ID}
		if err := s.profileRepo.Create(profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// LoginContext 登录请求上下文，用于登录日志
type LoginContext struct {
	ClientIP  string
	UserAgent string
	RequestID string
}

// Login 用户登录
func (s *AuthService) Login(username, password string, lctx LoginContext) (*models.User, string, time.Time, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		s.recordLogin(0, username, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError, lctx)
		return nil, "", time.Time{}, err
	}
	if user == nil {
		s.recordLogin(0, username, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials, lctx)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		s.recordLogin(user.ID, username, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials, lctx)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if strings.EqualFold(user.Status, constants.UserStatusDisabled) {
		s.recordLogin(user.ID, username, constants.LoginLogStatusFailed, constants.LoginLogFailReasonUserDisabled, lctx)
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		s.recordLogin(user.ID, username, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError, lctx)
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	s.recordLogin(user.ID, username, constants.LoginLogStatusSuccess, "", lctx)
	return user, token, expiresAt, nil
}

// ChangePassword 修改密码，成功后失效所有已签发 Token
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hash
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), userID)
	return nil
}

// Logout 登出，使当前所有 Token 失效
func (s *AuthService) Logout(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return cache.DelUserAuthState(context.Background(), userID)
}

func (s *AuthService) recordLogin(userID uint, username, status, failReason string, lctx LoginContext) {
	if s.loginLogRepo == nil {
		return
	}
	log := &models.UserLoginLog{
		UserID:     userID,
		Username:   username,
		Status:     status,
		FailReason: failReason,
		ClientIP:   lctx.ClientIP,
		UserAgent:  lctx.UserAgent,
		RequestID:  lctx.RequestID,
	}
	if err := s.loginLogRepo.Create(log); err != nil {
		logger.Warnw("login_log_write_failed", "error", err, "username", username)
	}
}
