package usecase

import (
	"context"

	"go-hospital-booking/internal/converter"
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/internal/domain/repository"
	"go-hospital-booking/internal/service"
	"go-hospital-booking/pkg/jwt"
	"go-hospital-booking/pkg/password"
	"go-hospital-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	validate     *validator.CustomValidator
	transactor   repository.Transactor
	userRepo     repository.UserRepository
	auditService service.AuditService
	sessions     service.SessionStore
	jwtService   *jwt.JWTService
	accounts     accountCreator
}

func NewAuthUsecase(
	log *logrus.Logger,
	validate *validator.CustomValidator,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	sessions service.SessionStore,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		validate:     validate,
		transactor:   transactor,
		userRepo:     userRepo,
		auditService: auditService,
		sessions:     sessions,
		jwtService:   jwtService,
		accounts:     accountCreator{log: log, userRepo: userRepo},
	}
}

// Register creates a patient account and signs it in.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RolePatient,
	}

	// The session is saved inside the transaction so a failed sign-in
	// rolls the account back.
	var resp *dto.AuthResponse
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.accounts.create(ctx, user, req.Password); err != nil {
			return err
		}
		if err := u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(),
			converter.UserToResponse(user)); err != nil {
			return err
		}

		var err error
		resp, err = u.issueToken(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validate(u.validate, req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || !password.Matches(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	resp, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed audit write does not fail the login.
	_ = u.auditService.Log(ctx, &user.ID, entity.AuditActionUserLogin, nil)

	return resp, nil
}

// Logout revokes the session bound to token.
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	if err := u.sessions.Revoke(ctx, claims.UserID, claims.TokenID); err != nil {
		return err
	}

	_ = u.auditService.Log(ctx, &claims.UserID, entity.AuditActionUserLogout, nil)
	return nil
}

// VerifyToken resolves a bearer token to its identity. The token must carry
// a valid signature, be unexpired and still be whitelisted.
func (u *authUsecase) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	active, err := u.sessions.Exists(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueToken(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	token, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	expiry := u.jwtService.GetAccessExpiry()
	if err := u.sessions.Save(ctx, user.ID, tokenID, expiry); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:      *converter.UserToResponse(user),
		Token:     token,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}
