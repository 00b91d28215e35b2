package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/google/uuid"
)

const jobSelect = `
SELECT j.id, j.recruiter_id, u.email, r.company_name, j.title, j.description, j.stipend, j.type, j.location, j.status, j.created_at, j.updated_at
FROM job_posts j
JOIN recruiters r ON r.id = j.recruiter_id
JOIN users u ON u.id = r.user_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, j job.JobPost) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_posts (id, recruiter_id, title, description, stipend, type, location, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.RecruiterID, j.Title, j.Description, j.Stipend, j.Type, j.Location, string(j.Status),
	)
	return err
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.JobPost, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
}

func (r *PostgresJobRepository) UpdateJob(ctx context.Context, j job.JobPost) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_posts
		 SET title = $2, description = $3, stipend = $4, type = $5, location = $6, status = $7, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.Stipend, j.Type, j.Location, string(j.Status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f job.ListFilter) ([]job.JobPost, error) {
	where, args := buildJobFilter(f)
	limit, offset := clampPage(f.Limit, f.Offset, 20, 100)

	q := jobSelect + where + fmt.Sprintf(` ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_posts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) CountByType(ctx context.Context) ([]job.TypeCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(NULLIF(type, ''), 'Unspecified'), COUNT(*)
		 FROM job_posts
		 GROUP BY 1
		 ORDER BY 2 DESC, 1 ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.TypeCount, 0)
	for rows.Next() {
		var tc job.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) TrendingJobs(ctx context.Context, limit int) ([]job.JobPost, error) {
	limit, _ = clampPage(limit, 0, 10, 50)
	rows, err := r.db.Query(ctx, jobSelect+`
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.status = 'OPEN'
		GROUP BY j.id, u.email, r.company_name
		ORDER BY COUNT(a.id) DESC, j.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.JobPost, error) {
	rows, err := r.db.Query(ctx, jobSelect+` ORDER BY j.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// likeEscaper makes user input match literally inside an ILIKE pattern.
// Backslash is the default escape character in PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildJobFilter(f job.ListFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}
	like := func(s string) string {
		return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
	}

	if len(f.IDs) > 0 {
		add(`j.id = ANY(?)`, f.IDs)
	}
	if len(f.Keywords) > 0 {
		kws := make([]string, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				kws = append(kws, like(k))
			}
		}
		if len(kws) > 0 {
			add(`(j.title ILIKE ANY(?) OR j.description ILIKE ANY(?) OR j.type ILIKE ANY(?) OR j.location ILIKE ANY(?))`, kws)
		}
	}
	if strings.TrimSpace(f.Title) != "" {
		add(`j.title ILIKE ?`, like(f.Title))
	}
	if strings.TrimSpace(f.Type) != "" {
		add(`lower(j.type) = lower(?)`, strings.TrimSpace(f.Type))
	}
	if strings.TrimSpace(f.Location) != "" {
		add(`j.location ILIKE ?`, like(f.Location))
	}
	if strings.TrimSpace(f.CompanyName) != "" {
		add(`r.company_name ILIKE ?`, like(f.CompanyName))
	}
	if strings.TrimSpace(f.Stipend) != "" {
		add(`j.stipend ILIKE ?`, like(f.Stipend))
	}
	if strings.TrimSpace(f.RecruiterEmail) != "" {
		add(`u.email = lower(?)`, strings.TrimSpace(f.RecruiterEmail))
	}
	if f.RecruiterID != uuid.Nil {
		add(`j.recruiter_id = ?`, f.RecruiterID)
	}
	if f.Status != "" {
		add(`j.status = ?`, string(f.Status))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func collectJobs(rows database.Rows) ([]job.JobPost, error) {
	out := make([]job.JobPost, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.JobPost, error) {
	var j job.JobPost
	var status string
	err := row.Scan(
		&j.ID, &j.RecruiterID, &j.RecruiterEmail, &j.CompanyName,
		&j.Title, &j.Description, &j.Stipend, &j.Type, &j.Location,
		&status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return job.JobPost{}, job.ErrNotFound
		}
		return job.JobPost{}, fmt.Errorf("scan job: %w", err)
	}
	j.Status = job.Status(status)
	return j, nil
}
