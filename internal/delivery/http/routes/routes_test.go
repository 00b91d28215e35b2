package routes_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/handler"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/routes"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/jwt"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobs struct {
	usecase.JobUsecase
	params    usecase.JobListParams
	list      []job.JobPost
	createErr error
}

func (s *stubJobs) List(_ context.Context, p usecase.JobListParams) ([]job.JobPost, error) {
	s.params = p
	return s.list, nil
}

func (s *stubJobs) Create(_ context.Context, _ usecase.Actor, in usecase.JobInput) (job.JobPost, error) {
	if s.createErr != nil {
		return job.JobPost{}, s.createErr
	}
	return job.JobPost{ID: uuid.New(), Title: in.Title, Status: job.StatusOpen}, nil
}

type stubApplications struct {
	usecase.ApplicationUsecase
	applyErr error
	actor    usecase.Actor
}

func (s *stubApplications) Apply(_ context.Context, actor usecase.Actor, jobID uuid.UUID) (application.Application, error) {
	s.actor = actor
	if s.applyErr != nil {
		return application.Application{}, s.applyErr
	}
	return application.Application{ID: uuid.New(), JobID: jobID, Status: application.StatusApplied}, nil
}

type stubAdmin struct {
	usecase.AdminUsecase
}

func (stubAdmin) ListUsers(context.Context, usecase.Actor, string, int, int) ([]user.User, error) {
	return []user.User{{ID: uuid.New(), Name: "Asha", Email: "asha@zidio.in", Role: user.RoleStudent, Active: true}}, nil
}

type stubAnalytics struct {
	usecase.AnalyticsUsecase
}

func (stubAnalytics) Trends(context.Context) (usecase.Trends, error) {
	return usecase.Trends{
		Daily:   []analytics.Bucket{{Label: "2025-03-09", Count: 1}, {Label: "2025-03-10", Count: 2}},
		Monthly: []analytics.Bucket{{Label: "2025-03", Count: 3}},
	}, nil
}

type stubReports struct {
	usecase.ReportUsecase
}

func (stubReports) PopularJobs(context.Context) (usecase.PopularJobsReport, error) {
	return usecase.PopularJobsReport{
		GeneratedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Jobs:        []analytics.JobPopularity{{Title: "Go Developer", CompanyName: "Acme", Applications: 4}},
	}, nil
}

func (stubReports) Comprehensive(context.Context) (usecase.ComprehensiveReport, error) {
	return usecase.ComprehensiveReport{}, fmt.Errorf("%w: %w", usecase.ErrInternal, errors.New("connection reset"))
}

type stubAuth struct {
	usecase.AuthUsecase
	gotRefresh string
}

func (s *stubAuth) Refresh(_ context.Context, tok string) (usecase.TokenPair, error) {
	s.gotRefresh = tok
	if tok == "" {
		return usecase.TokenPair{}, usecase.ErrUnauthorized
	}
	return usecase.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app  *fiber.App
	jwt  *jwt.HMACService
	jobs *stubJobs
	apps *stubApplications
	auth *stubAuth
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	s := &testServer{
		app:  fiber.New(),
		jwt:  svc,
		jobs: &stubJobs{list: []job.JobPost{{ID: uuid.New(), Title: "Go Developer"}}},
		apps: &stubApplications{},
		auth: &stubAuth{},
	}
	s.app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	reg := &routes.Registry{
		AuthMW:       middleware.NewAuthMiddleware(svc),
		Health:       handler.NewHealthHandler().WithCheck("search", failingPinger{}, false),
		Auth:         handler.NewAuthHandler(s.auth),
		Jobs:         handler.NewJobsHandler(s.jobs),
		Applications: handler.NewApplicationHandler(s.apps),
		Analytics:    handler.NewAnalyticsHandler(stubAnalytics{}),
		Reports:      handler.NewReportHandler(stubReports{}),
		Admin:        handler.NewAdminHandler(stubAdmin{}),
	}
	reg.Register(s.app)
	return s
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), strings.ToLower(string(role))+"@zidio.in", string(role))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, target, token, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, resp.StatusCode, env.Status, "envelope status mirrors HTTP status")
	return resp.StatusCode, env
}

func TestJobList_IsPublicAndPassesFilters(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/jobPosts?keyword=golang&jobType=Internship&limit=10", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "golang", s.jobs.params.Keyword)
	assert.Equal(t, "Internship", s.jobs.params.Type)
	assert.Equal(t, 10, s.jobs.params.Limit)

	var list struct {
		Items []job.JobPost `json:"items"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Go Developer", list.Items[0].Title)

	code, _ = s.do(t, http.MethodGet, "/api/jobPosts?limit=abc", "", "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/jobPosts/jobTitle", "", "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/jobPosts/location?location=Pune", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Pune", s.jobs.params.Location)
}

func TestJobCreate_RequiresRecruiter(t *testing.T) {
	s := newTestServer(t)
	body := `{"title":"Go Developer","description":"APIs","type":"Internship","location":"Pune"}`

	code, env := s.do(t, http.MethodPost, "/api/jobPosts", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", env.Message)

	code, _ = s.do(t, http.MethodPost, "/api/jobPosts", "not-a-token", body)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/jobPosts", s.token(t, user.RoleStudent), body)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, env = s.do(t, http.MethodPost, "/api/jobPosts", s.token(t, user.RoleRecruiter), body)
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "Job post created", env.Message)
}

func TestJobCreate_ValidationFieldsInData(t *testing.T) {
	s := newTestServer(t)
	s.jobs.createErr = errors.Join(usecase.ErrInvalidInput, &validation.Error{Fields: []validation.FieldError{
		{Field: "title", Message: "is required"},
	}})

	code, env := s.do(t, http.MethodPost, "/api/jobPosts", s.token(t, user.RoleRecruiter), `{"title":""}`)
	require.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)

	var fields []validation.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, []validation.FieldError{{Field: "title", Message: "is required"}}, fields)
}

func TestApply_MapsConflictReason(t *testing.T) {
	s := newTestServer(t)
	jobID := uuid.New()
	student := s.token(t, user.RoleStudent)

	code, _ := s.do(t, http.MethodPost, "/api/applications/apply", student, fmt.Sprintf(`{"job_id":%q}`, jobID))
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, user.RoleStudent, s.apps.actor.Role)
	assert.Equal(t, "student@zidio.in", s.apps.actor.Email)

	s.apps.applyErr = fmt.Errorf("%w: %w", usecase.ErrConflict, application.ErrAlreadyApplied)
	code, env := s.do(t, http.MethodPost, "/api/applications/apply?jobId="+jobID.String(), student, "")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Student already applied to this job", env.Message)

	code, _ = s.do(t, http.MethodPost, "/api/applications/apply", s.token(t, user.RoleRecruiter), fmt.Sprintf(`{"job_id":%q}`, jobID))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPost, "/api/applications/apply", student, `{"job_id":"nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestAdmin_GuardedByRole(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/admin/users", s.token(t, user.RoleRecruiter), "")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, env := s.do(t, http.MethodGet, "/api/admin/users?role=student", s.token(t, user.RoleAdmin), "")
	require.Equal(t, fiber.StatusOK, code)
	assert.NotContains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), "asha@zidio.in")
}

func TestAnalyticsTrends_ChartSeries(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/analytics/trends", s.token(t, user.RoleAdmin), "")
	require.Equal(t, fiber.StatusOK, code)

	var trends struct {
		Daily struct {
			Labels []string `json:"labels"`
			Values []int    `json:"values"`
		} `json:"daily"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &trends))
	assert.Equal(t, []string{"2025-03-09", "2025-03-10"}, trends.Daily.Labels)
	assert.Equal(t, []int{1, 2}, trends.Daily.Values)

	code, _ = s.do(t, http.MethodGet, "/api/analytics/trends", s.token(t, user.RoleStudent), "")
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestReports_AdminOnly(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/reports/popular-jobs", s.token(t, user.RoleAdmin), "")
	require.Equal(t, fiber.StatusOK, code)
	var popular usecase.PopularJobsReport
	require.NoError(t, json.Unmarshal(env.Data, &popular))
	require.Len(t, popular.Jobs, 1)
	assert.Equal(t, 4, popular.Jobs[0].Applications)

	code, _ = s.do(t, http.MethodGet, "/api/reports/popular-jobs", s.token(t, user.RoleRecruiter), "")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/reports/popular-jobs", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodGet, "/api/reports/comprehensive", s.token(t, user.RoleAdmin), "")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.NotContains(t, env.Message, "connection reset")
}

func TestRefresh_BodyOrBearer(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"from-body"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "from-body", s.auth.gotRefresh)

	code, _ = s.do(t, http.MethodPost, "/api/auth/refresh", "from-header", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "from-header", s.auth.gotRefresh)

	code, _ = s.do(t, http.MethodPost, "/api/auth/refresh", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestHealth_OptionalDependencyDown(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), `"search":"down"`)
}
