package usecase

import (
	"time"

	"restock-srv/internal/alert"
	"restock-srv/internal/alert/repository"
	"restock-srv/internal/dispatch"
	"restock-srv/internal/plan"
	"restock-srv/internal/quiethours"
	userRepo "restock-srv/internal/user/repository"
	"restock-srv/pkg/log"
	"restock-srv/pkg/redis"
)

type Options struct {
	DedupWindow     time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
	SweepBatch      int
	LockTTL         time.Duration
}

// DefaultOptions is a 15 minute dedup window and 50 alerts per trailing hour.
func DefaultOptions() Options {
	return Options{
		DedupWindow:     15 * time.Minute,
		RateLimit:       50,
		RateLimitWindow: time.Hour,
		SweepBatch:      100,
		LockTTL:         30 * time.Second,
	}
}

type Deps struct {
	Repo       repository.Repository
	UserRepo   userRepo.Repository
	Plan       plan.Resolver
	QuietHours quiethours.Calculator
	Dispatcher dispatch.Dispatcher
	// Redis is optional. Without it, keys are only serialized within this process.
	Redis redis.IRedis
}

type implUseCase struct {
	l          log.Logger
	repo       repository.Repository
	userRepo   userRepo.Repository
	plan       plan.Resolver
	quiet      quiethours.Calculator
	dispatcher dispatch.Dispatcher
	locker     *keyLocker
	opts       Options
	clock      func() time.Time
}

var _ alert.UseCase = &implUseCase{}

func New(l log.Logger, deps Deps, opts Options) alert.UseCase {
	def := DefaultOptions()
	if opts.DedupWindow <= 0 {
		opts.DedupWindow = def.DedupWindow
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = def.RateLimit
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = def.RateLimitWindow
	}
	if opts.SweepBatch <= 0 {
		opts.SweepBatch = def.SweepBatch
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = def.LockTTL
	}

	return &implUseCase{
		l:          l,
		repo:       deps.Repo,
		userRepo:   deps.UserRepo,
		plan:       deps.Plan,
		quiet:      deps.QuietHours,
		dispatcher: deps.Dispatcher,
		locker:     newKeyLocker(deps.Redis, opts.LockTTL),
		opts:       opts,
		clock:      time.Now,
	}
}
