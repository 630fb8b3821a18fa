package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
	"github.com/quizmize/backend/internal/utils"
)

const minPasswordLen = 6

type AuthService interface {
	SignupUser(ctx context.Context, fullName, email, password string) (*types.User, string, error)
	LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
	ParseToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
	jwtSecretKey  string
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService, jwtSecretKey string) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
	}
}

func (as *authService) SignupUser(ctx context.Context, fullName, email, password string) (*types.User, string, error) {
	fullName = normalization.TrimInputString(fullName)
	email = normalization.ParseInputString(email)

	if vErr := validateSignupInput(fullName, email, password); vErr != nil {
		return nil, "", vErr
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("Failed to check user email: %w", err))
	}
	if emailExists {
		return nil, "", apierr.Conflict("email", "That email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("Failed to hash password: %w", err))
	}

	user := &types.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
		Level:    1,
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if aErr := as.avatarService.CreateUserAvatar(ctx, tx, user); aErr != nil {
			return fmt.Errorf("Failed to create user avatar: %w", aErr)
		}
		if _, cErr := as.userRepo.Create(ctx, tx, user); cErr != nil {
			if apierr.IsDuplicateKey(cErr) {
				return apierr.Conflict("email", "That email is already registered")
			}
			return fmt.Errorf("Failed to create user: %w", cErr)
		}
		return nil
	}); err != nil {
		return nil, "", apierr.From(err)
	}

	token, err := utils.CreateToken(user.ID, as.jwtSecretKey)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("Failed to sign token: %w", err))
	}

	as.log.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return nil, "", apierr.Validation("All fields must be filled")
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apierr.Conflict("email", "That email is not registered")
		}
		return nil, "", apierr.Internal(fmt.Errorf("Error retrieving user by email: %w", err))
	}

	if bErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); bErr != nil {
		return nil, "", apierr.Conflict("password", "That password is incorrect")
	}

	token, err := utils.CreateToken(user.ID, as.jwtSecretKey)
	if err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("Failed to sign token: %w", err))
	}

	as.log.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

func (as *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	userID, err := utils.ParseToken(tokenString, as.jwtSecretKey)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("Request is not authorized")
	}
	return userID, nil
}

func validateSignupInput(fullName, email, password string) error {
	fields := map[string]string{}
	if fullName == "" {
		fields["fullName"] = "Full name is required"
	}
	if email == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "Email is not valid"
	}
	if password == "" {
		fields["password"] = "Password is required"
	} else if len(password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
	}
	if len(fields) > 0 {
		return apierr.ValidationFields(fields)
	}
	return nil
}
