package app

import (
	"context"
	"errors"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	dbpostgres "github.com/arshsnaz/zidio-job-platform-sub000/internal/database/postgres"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/cache"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/mail"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/search"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/jwt"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/repository"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/worker"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/ws"

	"go.uber.org/zap"
)

const (
	mailWorkers    = 2
	mailQueue      = 256
	mailRatePerSec = 10
)

type Usecases struct {
	Auth          *usecase.Auth
	User          *usecase.User
	Notifications *usecase.Notifications
	Jobs          *usecase.Jobs
	Applications  *usecase.Applications
	Interviews    *usecase.Interviews
	Analytics     *usecase.Analytics
	Reports       *usecase.Reports
	Students      *usecase.Students
	Recruiters    *usecase.Recruiters
	Bookmarks     *usecase.Bookmarks
	Admin         *usecase.Admin
}

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Search *search.JobIndex
	Mailer *mail.Sender
	JWT    jwt.Service
	Hub    *ws.Hub

	Usecases Usecases

	mailPool *worker.Pool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	index, err := search.NewJobIndex(cfg.Search, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if index.Enabled() {
		if err := index.EnsureIndex(ctx); err != nil {
			log.Warn("elasticsearch index setup failed, keyword search falls back to SQL", zap.Error(err))
		}
	}

	mailer, err := mail.NewSESSender(ctx, cfg.Mail, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Cache:    cache.NewRedis(cfg.Redis, log),
		Search:   index,
		Mailer:   mailer,
		JWT:      jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
		Hub:      ws.NewHub(log.Named("ws")),
		mailPool: worker.NewPool(mailWorkers, mailQueue),
		done:     make(chan struct{}),
	}
	c.mailPool.SetRateLimit(mailRatePerSec)
	c.wireUsecases()
	c.start()
	return c, nil
}

func (c *Container) wireUsecases() {
	users := repository.NewPostgresUserRepository(c.DB)
	students := repository.NewPostgresStudentRepository(c.DB)
	recruiters := repository.NewPostgresRecruiterRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	apps := repository.NewPostgresApplicationRepository(c.DB)
	interviews := repository.NewPostgresInterviewRepository(c.DB)
	notifications := repository.NewPostgresNotificationRepository(c.DB)
	bookmarks := repository.NewPostgresBookmarkRepository(c.DB)
	tx := repository.NewTxManager(c.DB)

	var mailer usecase.Mailer
	if c.Mailer.Enabled() {
		mailer = c.Mailer
	}
	var searcher usecase.JobSearcher
	if c.Search.Enabled() {
		searcher = c.Search
	}

	notifier := usecase.NewNotificationUsecase(notifications, c.Hub, mailer, c.mailPool, c.Log.Named("notifications"))
	analytics := usecase.NewAnalyticsUsecase(users, jobs, apps, interviews, c.Cache, c.Log.Named("analytics"))

	c.Usecases = Usecases{
		Auth:          usecase.NewAuthUsecase(users, students, recruiters, tx, c.JWT),
		User:          usecase.NewUserUsecase(users),
		Notifications: notifier,
		Jobs:          usecase.NewJobUsecase(jobs, recruiters, bookmarks, searcher, c.Cache, notifier, c.Log.Named("jobs")),
		Applications:  usecase.NewApplicationUsecase(apps, jobs, students, recruiters, notifier, c.Cache, c.Log.Named("applications")),
		Interviews:    usecase.NewInterviewUsecase(interviews, apps, jobs, students, recruiters, users, notifier, c.Cache, c.Log.Named("interviews")),
		Analytics:     analytics,
		Reports:       usecase.NewReportUsecase(analytics, users, recruiters, jobs, apps, c.Cache, c.Log.Named("reports")),
		Students:      usecase.NewStudentUsecase(students, users, jobs, apps, c.Log.Named("students")),
		Recruiters:    usecase.NewRecruiterUsecase(recruiters, users, jobs, apps, c.Log.Named("recruiters")),
		Bookmarks:     usecase.NewBookmarkUsecase(bookmarks, jobs),
		Admin:         usecase.NewAdminUsecase(users, analytics, c.Log.Named("admin")),
	}
}

// start launches the websocket hub and the mail workers. Mail results are
// drained here so workers never block on an unread channel.
func (c *Container) start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go c.Hub.Run(ctx)

	results := c.mailPool.Run(ctx)
	go func() {
		defer close(c.done)
		failed := 0
		for res := range results {
			if res.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			c.Log.Info("mail worker stopped", zap.Int("failed_deliveries", failed))
		}
	}()
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	c.mailPool.Close()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		c.Log.Warn("mail queue not drained before shutdown")
	}
	if c.cancel != nil {
		c.cancel()
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	_ = c.Log.Sync()
	return errors.Join(errs...)
}
