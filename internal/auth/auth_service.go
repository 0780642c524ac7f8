package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/auth/errors"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accessTokenTTL = 12 * time.Hour

// Service is the login simulation: it authenticates against the employee
// directory and issues tokens. It stands in for a real identity provider.
//
//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
}

type service struct {
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	e, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login unknown email", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)); err != nil {
		s.logger.Warn("login bad password", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(e.ID.String(), string(e.Role), accessTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("employee_id", e.ID.String()),
		zap.String("role", string(e.Role)),
	)
	return LoginResponse{
		AccessToken: token,
		Employee:    employee.MapToResponse(*e),
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employee.EmployeeResponse{}, autherrors.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, err
	}
	return employee.MapToResponse(*e), nil
}

func (s *service) generateToken(employeeID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
