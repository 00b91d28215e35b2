package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/interview"

	"github.com/google/uuid"
)

const interviewColumns = `id, application_id, type, scheduled_at, end_at, interviewer_email, interviewer_name,
location, meeting_link, status, notes, score, feedback, created_at, updated_at`

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

func (r *PostgresInterviewRepository) CreateInterview(ctx context.Context, iv interview.Interview) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO interviews (id, application_id, type, scheduled_at, end_at, interviewer_email, interviewer_name,
		 location, meeting_link, status, notes, score, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		iv.ID, iv.ApplicationID, string(iv.Type), iv.ScheduledAt, iv.EndAt, iv.InterviewerEmail, iv.InterviewerName,
		iv.Location, iv.MeetingLink, string(iv.Status), iv.Notes, iv.Score, iv.Feedback,
	)
	return err
}

func (r *PostgresInterviewRepository) GetInterviewByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	return scanInterview(r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
}

func (r *PostgresInterviewRepository) UpdateInterview(ctx context.Context, iv interview.Interview) error {
	n, err := r.db.Exec(ctx,
		`UPDATE interviews
		 SET type = $2, scheduled_at = $3, end_at = $4, interviewer_email = $5, interviewer_name = $6,
		     location = $7, meeting_link = $8, status = $9, notes = $10, score = $11, feedback = $12, updated_at = now()
		 WHERE id = $1`,
		iv.ID, string(iv.Type), iv.ScheduledAt, iv.EndAt, iv.InterviewerEmail, iv.InterviewerName,
		iv.Location, iv.MeetingLink, string(iv.Status), iv.Notes, iv.Score, iv.Feedback,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *PostgresInterviewRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]interview.Interview, error) {
	return r.list(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at ASC`,
		applicationID,
	)
}

func (r *PostgresInterviewRepository) ListByInterviewer(ctx context.Context, email string, from, to time.Time) ([]interview.Interview, error) {
	var fromArg, toArg any
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}
	return r.list(ctx,
		`SELECT `+interviewColumns+`
		 FROM interviews
		 WHERE lower(interviewer_email) = lower($1)
		   AND ($2::timestamptz IS NULL OR end_at >= $2)
		   AND ($3::timestamptz IS NULL OR scheduled_at <= $3)
		 ORDER BY scheduled_at ASC`,
		email, fromArg, toArg,
	)
}

func (r *PostgresInterviewRepository) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]interview.Interview, error) {
	limit, _ = clampPage(limit, 0, 50, 500)
	return r.list(ctx,
		`SELECT `+interviewColumns+`
		 FROM interviews
		 WHERE scheduled_at > $1 AND status IN ('SCHEDULED', 'CONFIRMED')
		 ORDER BY scheduled_at ASC
		 LIMIT $2`,
		now, limit,
	)
}

func (r *PostgresInterviewRepository) ListAll(ctx context.Context) ([]interview.Interview, error) {
	return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews ORDER BY scheduled_at ASC`)
}

func (r *PostgresInterviewRepository) list(ctx context.Context, q string, args ...any) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInterview(row database.Row) (interview.Interview, error) {
	var iv interview.Interview
	var typ, status string
	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &typ, &iv.ScheduledAt, &iv.EndAt, &iv.InterviewerEmail, &iv.InterviewerName,
		&iv.Location, &iv.MeetingLink, &status, &iv.Notes, &iv.Score, &iv.Feedback, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, fmt.Errorf("scan interview: %w", err)
	}
	iv.Type = interview.Type(typ)
	iv.Status = interview.Status(status)
	return iv, nil
}
