package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"

	"github.com/google/uuid"
)

const (
	DefaultSkills    = "Java, Spring Boot"
	DefaultEducation = "Computer Science"
)

var ErrNotFound = errors.New("student not found")

type Student struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Skills    string    `json:"skills"`
	Education string    `json:"education"`
	ResumeURL string    `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SkillList splits the comma separated skills into lower-cased tokens.
func (s Student) SkillList() []string {
	parts := strings.Split(s.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProfileScore weighs the filled profile fields into a 0..100 completeness score.
func ProfileScore(s Student) int {
	score := 0
	if strings.TrimSpace(s.Email) != "" {
		score += 20
	}
	if strings.TrimSpace(s.Name) != "" {
		score += 20
	}
	if strings.TrimSpace(s.Skills) != "" {
		score += 30
	}
	if strings.TrimSpace(s.Education) != "" {
		score += 20
	}
	if strings.TrimSpace(s.ResumeURL) != "" {
		score += 10
	}
	return score
}

type Repository interface {
	CreateStudent(ctx context.Context, q database.Querier, s Student) error
	UpsertStudent(ctx context.Context, s Student) (Student, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (Student, error)
	GetStudentByEmail(ctx context.Context, email string) (Student, error)
	GetStudentByUserID(ctx context.Context, userID uuid.UUID) (Student, error)
}
