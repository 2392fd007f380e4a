package service

import (
	"errors"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperr"
	"go-stockledger/pkg/jwt"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("log in unsuccessful, check username or password")

type RegisterRequest struct {
	UserName    string `json:"username" validate:"required,max=20"`
	AccountName string `json:"account_name" validate:"required,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

// AuthService is the directory/auth adapter: it owns credential
// storage and resolves user names to the ids the ledger records in
// entered_by. Passwords are stored only as salted bcrypt hashes.
type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(userName, password string) (*LoginResponse, error)
	Logout(userID uint) error
	ResolveUserID(userName string) (uint, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.Validation, validator.Describe(errs))
	}

	existing, err := s.userRepo.FindByIdentity(req.UserName, req.AccountName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "this user already exists, log in to your account")
	}

	user := &model.User{
		UserName:    req.UserName,
		AccountName: req.AccountName,
		Role:        req.Role,
		Email:       req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(apperr.Constraint, err, "unable to register user")
	}

	return user, nil
}

// Login verifies credentials and issues a stateless token. The token
// version rotates on every login, so only the newest token is valid.
func (s *authService) Login(userName, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUserName(userName)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	newVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.UserID, newVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.UserID, user.UserName, user.AccountName, user.Role, newVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Logout rotates the token version so outstanding tokens stop
// validating.
func (s *authService) Logout(userID uint) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ResolveUserID(userName string) (uint, error) {
	user, err := s.userRepo.FindByUserName(userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.Newf(apperr.NotFound, "user %q not found", userName)
		}
		return 0, err
	}
	return user.UserID, nil
}
