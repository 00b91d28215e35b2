package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string
	Password string
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(q database.Querier) error) error
}

type Service struct {
	users      user.Repository
	students   student.Repository
	recruiters recruiter.Repository
	tx         txRunner
}

func NewService(users user.Repository, students student.Repository, recruiters recruiter.Repository, tx txRunner) *Service {
	return &Service{users: users, students: students, recruiters: recruiters, tx: tx}
}

// Register creates the account and its empty role profile in one transaction.
// Administrators cannot register themselves.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Registration.Validate(in); err != nil {
		return user.User{}, errors.Join(ErrInvalidInput, err)
	}
	role, err := user.ParseRole(in.Role)
	if err != nil || role == user.RoleAdmin {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, errors.Join(ErrInternal, err)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, errors.Join(ErrInternal, err)
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	err = s.tx.WithinTx(ctx, func(q database.Querier) error {
		if err := s.users.CreateUser(ctx, q, u); err != nil {
			return err
		}
		switch role {
		case user.RoleStudent:
			return s.students.CreateStudent(ctx, q, student.Student{
				ID:        uuid.New(),
				UserID:    u.ID,
				Skills:    student.DefaultSkills,
				Education: student.DefaultEducation,
			})
		case user.RoleRecruiter:
			return s.recruiters.CreateRecruiter(ctx, q, recruiter.Recruiter{
				ID:          uuid.New(),
				UserID:      u.ID,
				CompanyName: recruiter.DefaultCompanyName,
				Designation: recruiter.DefaultDesignation,
			})
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, errors.Join(ErrInternal, err)
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	if !u.Active {
		return user.User{}, ErrAccountDisabled
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
