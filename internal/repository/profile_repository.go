package repository

import (
	"context"
	"fmt"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"

	"github.com/google/uuid"
)

const studentSelect = `
SELECT s.id, s.user_id, u.name, u.email, s.skills, s.education, s.resume_url, s.created_at, s.updated_at
FROM students s
JOIN users u ON u.id = s.user_id`

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) CreateStudent(ctx context.Context, q database.Querier, s student.Student) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO students (id, user_id, skills, education, resume_url) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.Skills, s.Education, s.ResumeURL,
	)
	return err
}

func (r *PostgresStudentRepository) UpsertStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO students (id, user_id, skills, education, resume_url)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET skills = EXCLUDED.skills,
		     education = EXCLUDED.education,
		     resume_url = EXCLUDED.resume_url,
		     updated_at = now()
		 RETURNING id`,
		s.ID, s.UserID, s.Skills, s.Education, s.ResumeURL,
	).Scan(&id)
	if err != nil {
		return student.Student{}, err
	}
	return r.GetStudentByID(ctx, id)
}

func (r *PostgresStudentRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
}

func (r *PostgresStudentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE u.email = $1`, email))
}

func (r *PostgresStudentRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (student.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
}

func scanStudent(row database.Row) (student.Student, error) {
	var s student.Student
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.Skills, &s.Education, &s.ResumeURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, fmt.Errorf("scan student: %w", err)
	}
	return s, nil
}

const recruiterSelect = `
SELECT r.id, r.user_id, u.name, u.email, r.company_name, r.designation, r.created_at, r.updated_at
FROM recruiters r
JOIN users u ON u.id = r.user_id`

type PostgresRecruiterRepository struct {
	db database.DB
}

func NewPostgresRecruiterRepository(db database.DB) *PostgresRecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

func (r *PostgresRecruiterRepository) CreateRecruiter(ctx context.Context, q database.Querier, rc recruiter.Recruiter) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO recruiters (id, user_id, company_name, designation) VALUES ($1, $2, $3, $4)`,
		rc.ID, rc.UserID, rc.CompanyName, rc.Designation,
	)
	return err
}

func (r *PostgresRecruiterRepository) UpsertRecruiter(ctx context.Context, rc recruiter.Recruiter) (recruiter.Recruiter, error) {
	if rc.ID == uuid.Nil {
		rc.ID = uuid.New()
	}
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO recruiters (id, user_id, company_name, designation)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET company_name = EXCLUDED.company_name,
		     designation = EXCLUDED.designation,
		     updated_at = now()
		 RETURNING id`,
		rc.ID, rc.UserID, rc.CompanyName, rc.Designation,
	).Scan(&id)
	if err != nil {
		return recruiter.Recruiter{}, err
	}
	return r.GetRecruiterByID(ctx, id)
}

func (r *PostgresRecruiterRepository) GetRecruiterByID(ctx context.Context, id uuid.UUID) (recruiter.Recruiter, error) {
	return scanRecruiter(r.db.QueryRow(ctx, recruiterSelect+` WHERE r.id = $1`, id))
}

func (r *PostgresRecruiterRepository) GetRecruiterByEmail(ctx context.Context, email string) (recruiter.Recruiter, error) {
	return scanRecruiter(r.db.QueryRow(ctx, recruiterSelect+` WHERE u.email = $1`, email))
}

func (r *PostgresRecruiterRepository) GetRecruiterByUserID(ctx context.Context, userID uuid.UUID) (recruiter.Recruiter, error) {
	return scanRecruiter(r.db.QueryRow(ctx, recruiterSelect+` WHERE r.user_id = $1`, userID))
}

func (r *PostgresRecruiterRepository) ListRecruiters(ctx context.Context) ([]recruiter.Recruiter, error) {
	rows, err := r.db.Query(ctx, recruiterSelect+` ORDER BY r.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]recruiter.Recruiter, 0)
	for rows.Next() {
		rc, err := scanRecruiter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRecruiter(row database.Row) (recruiter.Recruiter, error) {
	var rc recruiter.Recruiter
	if err := row.Scan(&rc.ID, &rc.UserID, &rc.Name, &rc.Email, &rc.CompanyName, &rc.Designation, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return recruiter.Recruiter{}, recruiter.ErrNotFound
		}
		return recruiter.Recruiter{}, fmt.Errorf("scan recruiter: %w", err)
	}
	return rc, nil
}
