package usecase

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"restock-srv/internal/model"
	"restock-srv/internal/webhook"
	"restock-srv/internal/webhook/repository"
	"restock-srv/pkg/log"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultPollInterval = time.Second
	userAgent           = "RestockAlerts-Webhook/1.0"
)

type Options struct {
	// DefaultPolicy applies to subscriptions without a usable retry policy of their own.
	DefaultPolicy model.RetryPolicy
	Timeout       time.Duration
	PollInterval  time.Duration
	// SendRate caps outbound requests per second across all subscriptions. Zero means unlimited.
	SendRate  float64
	SendBurst int
	// Production rejects plain http and private-network endpoints before sending.
	Production bool
}

type queueItem struct {
	id             string
	subscriptionID string
	event          string
	body           []byte
	attempt        int
	readyAt        time.Time
}

type implUseCase struct {
	l       log.Logger
	repo    repository.Repository
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
	clock   func() time.Time

	mu     sync.Mutex
	items  []queueItem
	closed bool
	signal chan struct{}

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

var _ webhook.UseCase = &implUseCase{}

func New(l log.Logger, repo repository.Repository, opts Options) webhook.UseCase {
	return newUseCase(l, repo, opts)
}

func newUseCase(l log.Logger, repo repository.Repository, opts Options) *implUseCase {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.DefaultPolicy.MaxRetries < 0 {
		opts.DefaultPolicy.MaxRetries = 0
	}
	if opts.DefaultPolicy.BaseDelay <= 0 {
		opts.DefaultPolicy.BaseDelay = time.Second
	}
	if opts.DefaultPolicy.BackoffMultiplier < 1 {
		opts.DefaultPolicy.BackoffMultiplier = 2
	}

	limit := rate.Inf
	if opts.SendRate > 0 {
		limit = rate.Limit(opts.SendRate)
	}
	burst := opts.SendBurst
	if burst <= 0 {
		burst = 1
	}

	return &implUseCase{
		l:       l,
		repo:    repo,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		opts:    opts,
		clock:   time.Now,
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}
