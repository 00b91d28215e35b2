package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"

	"github.com/google/uuid"
)

const applicationSelect = `
SELECT a.id, a.student_id, a.job_id, u.name, u.email, j.title, j.type, r.company_name, a.status, a.applied_date, a.updated_at
FROM applications a
JOIN students s ON s.id = a.student_id
JOIN users u ON u.id = s.user_id
JOIN job_posts j ON j.id = a.job_id
JOIN recruiters r ON r.id = j.recruiter_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) CreateApplication(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, student_id, job_id, status, applied_date) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.StudentID, a.JobID, string(a.Status), a.AppliedDate,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return application.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

// UpdateStatus only succeeds while the stored status still equals c.FromStatus.
// The status and its history row are written in one transaction.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, c application.StatusChange) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`UPDATE applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
			c.ApplicationID, string(c.FromStatus), string(c.ToStatus),
		)
		if err != nil {
			return err
		}
		if n == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, c.ApplicationID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return application.ErrNotFound
			}
			return application.ErrInvalidTransition
		}

		var changedBy *uuid.UUID
		if c.ChangedBy != uuid.Nil {
			changedBy = &c.ChangedBy
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO application_status_history (id, application_id, from_status, to_status, changed_by, changed_by_email, note, changed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.ApplicationID, string(c.FromStatus), string(c.ToStatus), changedBy, c.ChangedByEmail, c.Note, c.ChangedAt,
		)
		return err
	})
}

func (r *PostgresApplicationRepository) StatusHistory(ctx context.Context, applicationID uuid.UUID) ([]application.StatusChange, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, from_status, to_status, COALESCE(changed_by, '00000000-0000-0000-0000-000000000000'::uuid), changed_by_email, note, changed_at
		 FROM application_status_history
		 WHERE application_id = $1
		 ORDER BY changed_at, id`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.StatusChange, 0)
	for rows.Next() {
		var c application.StatusChange
		var from, to string
		if err := rows.Scan(&c.ID, &c.ApplicationID, &from, &to, &c.ChangedBy, &c.ChangedByEmail, &c.Note, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		c.FromStatus, c.ToStatus = application.Status(from), application.Status(to)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListApplications(ctx context.Context, f application.ListFilter) ([]application.Application, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.StudentID != uuid.Nil {
		add(`a.student_id = $%d`, f.StudentID)
	}
	if f.JobID != uuid.Nil {
		add(`a.job_id = $%d`, f.JobID)
	}
	if f.RecruiterID != uuid.Nil {
		add(`j.recruiter_id = $%d`, f.RecruiterID)
	}
	if f.Status != "" {
		add(`a.status = $%d`, string(f.Status))
	}

	q := applicationSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY a.applied_date DESC`
	if f.Limit > 0 {
		limit, offset := clampPage(f.Limit, f.Offset, 50, 500)
		q += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ExistsForStudentJob(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND job_id = $2)`,
		studentID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[application.Status]int{}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[application.Status(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) AppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM applications WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByJob counts applications per job owned by recruiterID, including jobs without any.
func (r *PostgresApplicationRepository) CountByJob(ctx context.Context, recruiterID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id, COUNT(a.id)
		 FROM job_posts j
		 LEFT JOIN applications a ON a.job_id = j.id
		 WHERE j.recruiter_id = $1
		 GROUP BY j.id`,
		recruiterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID]int{}
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.StudentID, &a.JobID,
		&a.StudentName, &a.StudentEmail,
		&a.JobTitle, &a.JobType, &a.CompanyName,
		&status, &a.AppliedDate, &a.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, fmt.Errorf("scan application: %w", err)
	}
	a.Status = application.Status(status)
	return a, nil
}
