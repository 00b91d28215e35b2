package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byID    map[uuid.UUID]user.User
	failNew bool
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[uuid.UUID]user.User{}} }

func (f *fakeUsers) CreateUser(_ context.Context, _ database.Querier, u user.User) error {
	if f.failNew {
		return errors.New("insert failed")
	}
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}
func (f *fakeUsers) UpdateUser(context.Context, user.User) error      { return nil }
func (f *fakeUsers) SetActive(context.Context, uuid.UUID, bool) error { return nil }
func (f *fakeUsers) ListUsers(context.Context, user.ListFilter) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUsers) CountByRole(context.Context) (map[user.Role]int, error) { return nil, nil }
func (f *fakeUsers) CountByActive(context.Context) (int, int, error)          { return 0, 0, nil }
func (f *fakeUsers) RegisteredSince(context.Context, time.Time) ([]time.Time, error) {
	return nil, nil
}

type fakeStudents struct{ created []student.Student }

func (f *fakeStudents) CreateStudent(_ context.Context, _ database.Querier, s student.Student) error {
	f.created = append(f.created, s)
	return nil
}
func (f *fakeStudents) UpsertStudent(context.Context, student.Student) (student.Student, error) {
	return student.Student{}, nil
}
func (f *fakeStudents) GetStudentByID(context.Context, uuid.UUID) (student.Student, error) {
	return student.Student{}, student.ErrNotFound
}
func (f *fakeStudents) GetStudentByEmail(context.Context, string) (student.Student, error) {
	return student.Student{}, student.ErrNotFound
}
func (f *fakeStudents) GetStudentByUserID(context.Context, uuid.UUID) (student.Student, error) {
	return student.Student{}, student.ErrNotFound
}

type fakeRecruiters struct{ created []recruiter.Recruiter }

func (f *fakeRecruiters) CreateRecruiter(_ context.Context, _ database.Querier, r recruiter.Recruiter) error {
	f.created = append(f.created, r)
	return nil
}
func (f *fakeRecruiters) UpsertRecruiter(context.Context, recruiter.Recruiter) (recruiter.Recruiter, error) {
	return recruiter.Recruiter{}, nil
}
func (f *fakeRecruiters) GetRecruiterByID(context.Context, uuid.UUID) (recruiter.Recruiter, error) {
	return recruiter.Recruiter{}, recruiter.ErrNotFound
}
func (f *fakeRecruiters) GetRecruiterByEmail(context.Context, string) (recruiter.Recruiter, error) {
	return recruiter.Recruiter{}, recruiter.ErrNotFound
}
func (f *fakeRecruiters) GetRecruiterByUserID(context.Context, uuid.UUID) (recruiter.Recruiter, error) {
	return recruiter.Recruiter{}, recruiter.ErrNotFound
}
func (f *fakeRecruiters) ListRecruiters(context.Context) ([]recruiter.Recruiter, error) {
	return f.created, nil
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(q database.Querier) error) error {
	return fn(nil)
}

func newTestService() (*Service, *fakeUsers, *fakeStudents, *fakeRecruiters) {
	u, s, r := newFakeUsers(), &fakeStudents{}, &fakeRecruiters{}
	return NewService(u, s, r, inlineTx{}), u, s, r
}

func TestRegister_StudentGetsDefaultProfile(t *testing.T) {
	svc, _, students, recruiters := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: " Ana ", Email: " Ana@Example.com ", Password: "password1", Role: "student",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ana@example.com" || u.Name != "Ana" || u.Role != user.RoleStudent {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash leaked")
	}
	if len(students.created) != 1 || len(recruiters.created) != 0 {
		t.Fatalf("profiles: students=%d recruiters=%d", len(students.created), len(recruiters.created))
	}
	if students.created[0].Skills != student.DefaultSkills || students.created[0].Education != student.DefaultEducation {
		t.Fatalf("unexpected defaults: %+v", students.created[0])
	}
}

func TestRegister_RecruiterGetsDefaultProfile(t *testing.T) {
	svc, _, _, recruiters := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ravi", Email: "ravi@zidio.in", Password: "password1", Role: "RECRUITER",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recruiters.created) != 1 || recruiters.created[0].CompanyName != recruiter.DefaultCompanyName {
		t.Fatalf("unexpected recruiter profile: %+v", recruiters.created)
	}
}

func TestRegister_Rejections(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Name: "A", Email: "a@example.com", Password: "short", Role: "STUDENT"},
		{Name: "A", Email: "not-an-email", Password: "password1", Role: "STUDENT"},
		{Name: "A", Email: "a@example.com", Password: "password1", Role: "ADMIN"},
		{Name: "A", Email: "a@example.com", Password: "password1", Role: "janitor"},
		{Name: " ", Email: "a@example.com", Password: "password1", Role: "STUDENT"},
	}
	for i, in := range cases {
		if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	in := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "password1", Role: "STUDENT"}

	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	active := user.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Role: user.RoleStudent, Active: true}
	disabled := user.User{ID: uuid.New(), Email: "off@example.com", PasswordHash: string(hash), Role: user.RoleStudent}
	users.byID[active.ID] = active
	users.byID[disabled.ID] = disabled

	u, err := svc.Login(ctx, LoginInput{Email: "ANA@example.com", Password: "password1"})
	if err != nil || u.ID != active.ID {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "off@example.com", Password: "password1"}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}
