package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"

	"golang.org/x/crypto/bcrypt"
)

const DefaultSamplePassword = "password123"

type Account struct {
	Name     string
	Email    string
	Password string
}

type AdminSeeder struct {
	Account Account
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if strings.TrimSpace(s.Account.Email) == "" || len(s.Account.Password) < 8 {
		return fmt.Errorf("admin account needs an email and a password of at least 8 characters")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "role", "active"); err != nil {
		return err
	}

	name := s.Account.Name
	if name == "" {
		name = "Platform Admin"
	}
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		_, err := insertUser(ctx, tx, name, s.Account.Email, s.Account.Password, "ADMIN")
		return err
	})
}

type RecruitersSeeder struct {
	Password string
}

func (RecruitersSeeder) Name() string { return "recruiters" }

func (s RecruitersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "recruiters", "id", "user_id", "company_name", "designation"); err != nil {
		return err
	}

	items := []struct {
		Name        string
		Email       string
		CompanyName string
		Designation string
	}{
		{Name: "TechCorp Recruiter", Email: "recruiter@techcorp.com", CompanyName: "TechCorp Solutions", Designation: "Talent Acquisition Lead"},
		{Name: "InnovateLabs Careers", Email: "careers@innovatelabs.com", CompanyName: "InnovateLabs", Designation: "HR Manager"},
		{Name: "CloudTech HR", Email: "hr@cloudtech.com", CompanyName: "CloudTech Systems", Designation: "HR Manager"},
		{Name: "DataFlow Jobs", Email: "jobs@dataflow.com", CompanyName: "DataFlow Inc", Designation: "Recruiter"},
		{Name: "AI Innovations ML Hiring", Email: "ml-jobs@aiinnovations.com", CompanyName: "AI Innovations", Designation: "Recruiter"},
		{Name: "MobileTech Hiring", Email: "mobile@mobiletech.com", CompanyName: "MobileTech Co", Designation: "Recruiter"},
		{Name: "StartupHub Internships", Email: "internships@startuphub.com", CompanyName: "StartupHub", Designation: "Campus Recruiter"},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := insertUser(ctx, tx, it.Name, it.Email, passwordOrDefault(s.Password), "RECRUITER"); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO recruiters (user_id, company_name, designation)
				SELECT id, $2, $3 FROM users WHERE email = $1
				ON CONFLICT (user_id) DO NOTHING`,
				it.Email, it.CompanyName, it.Designation,
			)
			if err != nil {
				return fmt.Errorf("recruiter %s: %w", it.Email, err)
			}
		}
		return nil
	})
}

type StudentsSeeder struct {
	Password string
}

func (StudentsSeeder) Name() string { return "students" }

func (s StudentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "students", "id", "user_id", "skills", "education", "resume_url"); err != nil {
		return err
	}

	items := []struct {
		Name      string
		Email     string
		Skills    string
		Education string
	}{
		{Name: "Asha Verma", Email: "asha.verma@student.zidio.in", Skills: "React, JavaScript, TypeScript, Node.js", Education: "B.Tech Computer Science"},
		{Name: "Rohan Mehta", Email: "rohan.mehta@student.zidio.in", Skills: "Python, Django, PostgreSQL, Docker", Education: "B.E. Information Technology"},
		{Name: "Priya Nair", Email: "priya.nair@student.zidio.in", Skills: "Python, TensorFlow, Pandas, NumPy", Education: "M.Sc Data Science"},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := insertUser(ctx, tx, it.Name, it.Email, passwordOrDefault(s.Password), "STUDENT"); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO students (user_id, skills, education)
				SELECT id, $2, $3 FROM users WHERE email = $1
				ON CONFLICT (user_id) DO NOTHING`,
				it.Email, it.Skills, it.Education,
			)
			if err != nil {
				return fmt.Errorf("student %s: %w", it.Email, err)
			}
		}
		return nil
	})
}

// insertUser creates the account unless the email is taken and reports whether a row was written.
func insertUser(ctx context.Context, q database.Querier, name, email, password, role string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	affected, err := q.Exec(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		name, strings.ToLower(strings.TrimSpace(email)), string(hash), role,
	)
	if err != nil {
		return false, fmt.Errorf("user %s: %w", email, err)
	}
	return affected > 0, nil
}

func passwordOrDefault(p string) string {
	if p == "" {
		return DefaultSamplePassword
	}
	return p
}
