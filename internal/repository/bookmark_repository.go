package repository

import (
	"context"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"

	"github.com/google/uuid"
)

type PostgresBookmarkRepository struct {
	db database.DB
	tx *TxManager
}

func NewPostgresBookmarkRepository(db database.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db, tx: NewTxManager(db)}
}

func (r *PostgresBookmarkRepository) Toggle(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var bookmarked bool
	err := r.tx.WithinTx(ctx, func(q database.Querier) error {
		n, err := q.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND job_id = $2`, userID, jobID)
		if err != nil {
			return err
		}
		if n > 0 {
			bookmarked = false
			return nil
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO bookmarks (user_id, job_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, jobID,
		); err != nil {
			return err
		}
		bookmarked = true
		return nil
	})
	return bookmarked, err
}

func (r *PostgresBookmarkRepository) ListJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
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

func (r *PostgresBookmarkRepository) FollowersOfRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT b.user_id
		 FROM bookmarks b
		 JOIN job_posts j ON j.id = b.job_id
		 JOIN users u ON u.id = b.user_id
		 WHERE j.recruiter_id = $1 AND u.role = 'STUDENT' AND u.active`,
		recruiterID,
	)
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
