package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/bookmark"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/interview"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/notification"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"

	"github.com/google/uuid"
)

var (
	_ job.Repository          = (*memJobs)(nil)
	_ application.Repository  = (*memApps)(nil)
	_ student.Repository      = (*memStudents)(nil)
	_ recruiter.Repository    = (*memRecruiters)(nil)
	_ user.Repository         = (*memUsers)(nil)
	_ interview.Repository    = (*memInterviews)(nil)
	_ notification.Repository = (*memNotifications)(nil)
	_ bookmark.Repository     = (*memBookmarks)(nil)
	_ Cache                   = (*memCache)(nil)
	_ Notifier                = (*recordingNotifier)(nil)
)

// world bundles the in-memory repositories used across usecase tests.
type world struct {
	users      *memUsers
	students   *memStudents
	recruiters *memRecruiters
	jobs       *memJobs
	apps       *memApps
	interviews *memInterviews
	bookmarks  *memBookmarks
	notifier   *recordingNotifier
	cache      *memCache
}

func newWorld() *world {
	w := &world{
		users:      &memUsers{byID: map[uuid.UUID]user.User{}},
		students:   &memStudents{byID: map[uuid.UUID]student.Student{}},
		recruiters: &memRecruiters{byID: map[uuid.UUID]recruiter.Recruiter{}},
		jobs:       &memJobs{byID: map[uuid.UUID]job.JobPost{}},
		interviews: &memInterviews{byID: map[uuid.UUID]interview.Interview{}},
		notifier:   &recordingNotifier{},
		cache:      newMemCache(),
	}
	w.apps = &memApps{byID: map[uuid.UUID]application.Application{}, w: w}
	w.bookmarks = &memBookmarks{set: map[[2]uuid.UUID]bool{}, w: w}
	return w
}

func (w *world) addUser(name, email string, role user.Role) user.User {
	u := user.User{ID: uuid.New(), Name: name, Email: email, Role: role, Active: true}
	w.users.byID[u.ID] = u
	return u
}

func (w *world) addStudent(name, email, skills string) (user.User, student.Student, Actor) {
	u := w.addUser(name, email, user.RoleStudent)
	s := student.Student{ID: uuid.New(), UserID: u.ID, Name: name, Email: email, Skills: skills}
	w.students.byID[s.ID] = s
	return u, s, Actor{UserID: u.ID, Email: email, Role: user.RoleStudent}
}

func (w *world) addRecruiter(name, email, company string) (user.User, recruiter.Recruiter, Actor) {
	u := w.addUser(name, email, user.RoleRecruiter)
	r := recruiter.Recruiter{ID: uuid.New(), UserID: u.ID, Name: name, Email: email, CompanyName: company}
	w.recruiters.byID[r.ID] = r
	return u, r, Actor{UserID: u.ID, Email: email, Role: user.RoleRecruiter}
}

func (w *world) addJob(rec recruiter.Recruiter, title, typ, location string, status job.Status) job.JobPost {
	j := job.JobPost{
		ID:             uuid.New(),
		RecruiterID:    rec.ID,
		RecruiterEmail: rec.Email,
		CompanyName:    rec.CompanyName,
		Title:          title,
		Description:    title + " role",
		Type:           typ,
		Location:       location,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
	w.jobs.byID[j.ID] = j
	return j
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Email: "admin@zidio.in", Role: user.RoleAdmin}
}

type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func (m *memUsers) CreateUser(_ context.Context, _ database.Querier, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) UpdateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Active = active
	m.byID[id] = u
	return nil
}

func (m *memUsers) ListUsers(_ context.Context, f user.ListFilter) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []user.User{}
	for _, u := range m.byID {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memUsers) CountByRole(_ context.Context) (map[user.Role]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[user.Role]int{}
	for _, u := range m.byID {
		out[u.Role]++
	}
	return out, nil
}

func (m *memUsers) CountByActive(_ context.Context) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var active, inactive int
	for _, u := range m.byID {
		if u.Active {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive, nil
}

func (m *memUsers) RegisteredSince(_ context.Context, since time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []time.Time{}
	for _, u := range m.byID {
		if !u.CreatedAt.Before(since) {
			out = append(out, u.CreatedAt)
		}
	}
	return out, nil
}

type memStudents struct {
	byID map[uuid.UUID]student.Student
}

func (m *memStudents) CreateStudent(_ context.Context, _ database.Querier, s student.Student) error {
	m.byID[s.ID] = s
	return nil
}

func (m *memStudents) UpsertStudent(_ context.Context, s student.Student) (student.Student, error) {
	for id, existing := range m.byID {
		if existing.UserID == s.UserID {
			existing.Skills, existing.Education, existing.ResumeURL = s.Skills, s.Education, s.ResumeURL
			m.byID[id] = existing
			return existing, nil
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.byID[s.ID] = s
	return s, nil
}

func (m *memStudents) GetStudentByID(_ context.Context, id uuid.UUID) (student.Student, error) {
	s, ok := m.byID[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (m *memStudents) GetStudentByEmail(_ context.Context, email string) (student.Student, error) {
	for _, s := range m.byID {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (m *memStudents) GetStudentByUserID(_ context.Context, userID uuid.UUID) (student.Student, error) {
	for _, s := range m.byID {
		if s.UserID == userID {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

type memRecruiters struct {
	byID map[uuid.UUID]recruiter.Recruiter
}

func (m *memRecruiters) CreateRecruiter(_ context.Context, _ database.Querier, r recruiter.Recruiter) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memRecruiters) UpsertRecruiter(_ context.Context, r recruiter.Recruiter) (recruiter.Recruiter, error) {
	for id, existing := range m.byID {
		if existing.UserID == r.UserID {
			existing.CompanyName, existing.Designation = r.CompanyName, r.Designation
			m.byID[id] = existing
			return existing, nil
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.byID[r.ID] = r
	return r, nil
}

func (m *memRecruiters) GetRecruiterByID(_ context.Context, id uuid.UUID) (recruiter.Recruiter, error) {
	r, ok := m.byID[id]
	if !ok {
		return recruiter.Recruiter{}, recruiter.ErrNotFound
	}
	return r, nil
}

func (m *memRecruiters) GetRecruiterByEmail(_ context.Context, email string) (recruiter.Recruiter, error) {
	for _, r := range m.byID {
		if strings.EqualFold(r.Email, email) {
			return r, nil
		}
	}
	return recruiter.Recruiter{}, recruiter.ErrNotFound
}

func (m *memRecruiters) GetRecruiterByUserID(_ context.Context, userID uuid.UUID) (recruiter.Recruiter, error) {
	for _, r := range m.byID {
		if r.UserID == userID {
			return r, nil
		}
	}
	return recruiter.Recruiter{}, recruiter.ErrNotFound
}

func (m *memRecruiters) ListRecruiters(_ context.Context) ([]recruiter.Recruiter, error) {
	out := make([]recruiter.Recruiter, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type memJobs struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]job.JobPost
	listCalls int
	lastList  job.ListFilter
	listErr   error
}

func (m *memJobs) CreateJob(_ context.Context, j job.JobPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[j.ID] = j
	return nil
}

func (m *memJobs) GetJobByID(_ context.Context, id uuid.UUID) (job.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.byID[id]
	if !ok {
		return job.JobPost{}, job.ErrNotFound
	}
	return j, nil
}

func (m *memJobs) UpdateJob(_ context.Context, j job.JobPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[j.ID]; !ok {
		return job.ErrNotFound
	}
	m.byID[j.ID] = j
	return nil
}

func (m *memJobs) DeleteJob(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return job.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memJobs) ListJobs(_ context.Context, f job.ListFilter) ([]job.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastList = f
	if m.listErr != nil {
		return nil, m.listErr
	}

	ids := map[uuid.UUID]bool{}
	for _, id := range f.IDs {
		ids[id] = true
	}
	out := []job.JobPost{}
	for _, j := range m.byID {
		if len(ids) > 0 && !ids[j.ID] {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.RecruiterID != uuid.Nil && j.RecruiterID != f.RecruiterID {
			continue
		}
		if f.Type != "" && !strings.EqualFold(j.Type, f.Type) {
			continue
		}
		if f.Location != "" && !containsFold(j.Location, f.Location) {
			continue
		}
		if f.Title != "" && !containsFold(j.Title, f.Title) {
			continue
		}
		if len(f.Keywords) > 0 && !matchesAny(j, f.Keywords) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memJobs) CountJobs(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

func (m *memJobs) CountByType(_ context.Context) ([]job.TypeCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, j := range m.byID {
		counts[j.Type]++
	}
	out := []job.TypeCount{}
	for t, n := range counts {
		out = append(out, job.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (m *memJobs) TrendingJobs(_ context.Context, limit int) ([]job.JobPost, error) {
	return []job.JobPost{}, nil
}

func (m *memJobs) ListAll(_ context.Context) ([]job.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]job.JobPost, 0, len(m.byID))
	for _, j := range m.byID {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func matchesAny(j job.JobPost, keywords []string) bool {
	for _, k := range keywords {
		if containsFold(j.Title, k) || containsFold(j.Description, k) || containsFold(j.Type, k) || containsFold(j.Location, k) {
			return true
		}
	}
	return false
}

type memApps struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]application.Application
	history []application.StatusChange
	w       *world
	err     error
}

func (m *memApps) CreateApplication(_ context.Context, a application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.StudentID == a.StudentID && existing.JobID == a.JobID {
			return application.ErrAlreadyApplied
		}
	}
	if st, ok := m.w.students.byID[a.StudentID]; ok {
		a.StudentName, a.StudentEmail = st.Name, st.Email
	}
	if j, ok := m.w.jobs.byID[a.JobID]; ok {
		a.JobTitle, a.JobType, a.CompanyName = j.Title, j.Type, j.CompanyName
	}
	m.byID[a.ID] = a
	return nil
}

func (m *memApps) GetApplicationByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *memApps) UpdateStatus(_ context.Context, c application.StatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[c.ApplicationID]
	if !ok {
		return application.ErrNotFound
	}
	if a.Status != c.FromStatus {
		return application.ErrInvalidTransition
	}
	a.Status = c.ToStatus
	m.byID[c.ApplicationID] = a
	m.history = append(m.history, c)
	return nil
}

func (m *memApps) StatusHistory(_ context.Context, applicationID uuid.UUID) ([]application.StatusChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []application.StatusChange{}
	for _, c := range m.history {
		if c.ApplicationID == applicationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memApps) DeleteApplication(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return application.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memApps) ListApplications(_ context.Context, f application.ListFilter) ([]application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []application.Application{}
	for _, a := range m.byID {
		if f.StudentID != uuid.Nil && a.StudentID != f.StudentID {
			continue
		}
		if f.JobID != uuid.Nil && a.JobID != f.JobID {
			continue
		}
		if f.RecruiterID != uuid.Nil && m.w.jobs.byID[a.JobID].RecruiterID != f.RecruiterID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedDate.After(out[j].AppliedDate) })
	return out, nil
}

func (m *memApps) ExistsForStudentJob(_ context.Context, studentID, jobID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.byID {
		if a.StudentID == studentID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) CountByStatus(_ context.Context) (map[application.Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[application.Status]int{}
	for _, a := range m.byID {
		out[a.Status]++
	}
	return out, nil
}

func (m *memApps) AppliedJobIDs(_ context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []uuid.UUID{}
	for _, a := range m.byID {
		if a.StudentID == studentID {
			out = append(out, a.JobID)
		}
	}
	return out, nil
}

func (m *memApps) CountByJob(_ context.Context, recruiterID uuid.UUID) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[uuid.UUID]int{}
	for _, j := range m.w.jobs.byID {
		if j.RecruiterID == recruiterID {
			out[j.ID] = 0
		}
	}
	for _, a := range m.byID {
		if _, ok := out[a.JobID]; ok {
			out[a.JobID]++
		}
	}
	return out, nil
}

type memInterviews struct {
	mu   sync.Mutex
	byID map[uuid.UUID]interview.Interview
}

func (m *memInterviews) CreateInterview(_ context.Context, iv interview.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[iv.ID] = iv
	return nil
}

func (m *memInterviews) GetInterviewByID(_ context.Context, id uuid.UUID) (interview.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.byID[id]
	if !ok {
		return interview.Interview{}, interview.ErrNotFound
	}
	return iv, nil
}

func (m *memInterviews) UpdateInterview(_ context.Context, iv interview.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[iv.ID]; !ok {
		return interview.ErrNotFound
	}
	m.byID[iv.ID] = iv
	return nil
}

func (m *memInterviews) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]interview.Interview, error) {
	return m.filter(func(iv interview.Interview) bool { return iv.ApplicationID == applicationID }), nil
}

func (m *memInterviews) ListByInterviewer(_ context.Context, email string, from, to time.Time) ([]interview.Interview, error) {
	return m.filter(func(iv interview.Interview) bool {
		if !strings.EqualFold(iv.InterviewerEmail, email) {
			return false
		}
		if !from.IsZero() && iv.EndAt.Before(from) {
			return false
		}
		if !to.IsZero() && iv.ScheduledAt.After(to) {
			return false
		}
		return true
	}), nil
}

func (m *memInterviews) ListUpcoming(_ context.Context, now time.Time, limit int) ([]interview.Interview, error) {
	out := interview.Upcoming(m.filter(func(interview.Interview) bool { return true }), now)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memInterviews) ListAll(_ context.Context) ([]interview.Interview, error) {
	return m.filter(func(interview.Interview) bool { return true }), nil
}

func (m *memInterviews) filter(keep func(interview.Interview) bool) []interview.Interview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []interview.Interview{}
	for _, iv := range m.byID {
		if keep(iv) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

type memNotifications struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (m *memNotifications) CreateNotification(_ context.Context, n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []notification.Notification{}
	for _, n := range m.items {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].Read = true
			return nil
		}
	}
	return notification.ErrNotFound
}

func (m *memNotifications) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.items {
		if it.UserID == userID && !it.Read {
			n++
		}
	}
	return n, nil
}

type memBookmarks struct {
	set map[[2]uuid.UUID]bool
	w   *world
}

func (m *memBookmarks) Toggle(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	k := [2]uuid.UUID{userID, jobID}
	if m.set[k] {
		delete(m.set, k)
		return false, nil
	}
	m.set[k] = true
	return true, nil
}

func (m *memBookmarks) ListJobIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for k := range m.set {
		if k[0] == userID {
			out = append(out, k[1])
		}
	}
	return out, nil
}

func (m *memBookmarks) FollowersOfRecruiter(_ context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	out := []uuid.UUID{}
	for k := range m.set {
		j, ok := m.w.jobs.byID[k[1]]
		if !ok || j.RecruiterID != recruiterID || seen[k[0]] {
			continue
		}
		if u := m.w.users.byID[k[0]]; u.Role != user.RoleStudent || !u.Active {
			continue
		}
		seen[k[0]] = true
		out = append(out, k[0])
	}
	return out, nil
}

type memCache struct {
	mu     sync.Mutex
	values map[string][]byte
	gets   int
}

func newMemCache() *memCache { return &memCache{values: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = []byte(value)
	return true, nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []NotifyInput
}

func (r *recordingNotifier) Notify(_ context.Context, in NotifyInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, in)
	return nil
}

func (r *recordingNotifier) to(userID uuid.UUID) []NotifyInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []NotifyInput
	for _, n := range r.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
