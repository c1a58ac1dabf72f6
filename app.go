package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/checkout"
	"github.com/neurogrid/storefront/core/emailcapture"
	"github.com/neurogrid/storefront/core/gate"
	"github.com/neurogrid/storefront/core/health"
	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/core/session"
	"github.com/neurogrid/storefront/core/tokenstore"
	redisdb "github.com/neurogrid/storefront/integration/database/redis"
	redisstore "github.com/neurogrid/storefront/integration/tokenstore/redis"
)

// App holds the wired storefront client.
type App struct {
	Config   Config
	Client   *apiclient.Client
	Session  *session.Manager
	Checkout *checkout.Initiator
	Policy   gate.Policy
	Pending  *gate.Pending

	store  tokenstore.Store
	logger *slog.Logger
	redis  *goredis.Client
}

// Option configures App construction.
type Option func(*appOptions)

type appOptions struct {
	logger     *slog.Logger
	store      tokenstore.Store
	clientOpts []apiclient.Option
}

// WithLogger overrides the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithTokenStore overrides the token store selected by Config.
func WithTokenStore(s tokenstore.Store) Option {
	return func(o *appOptions) {
		o.store = s
	}
}

// WithClientOptions appends options to the API client.
func WithClientOptions(opts ...apiclient.Option) Option {
	return func(o *appOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// New wires an App from cfg. It does not bootstrap the session.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := appOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = newLogger(cfg)
	}

	a := &App{
		Config:  cfg,
		Policy:  gate.Policy{PromptAuthOnPurchase: cfg.PromptAuthOnPurchase},
		Pending: &gate.Pending{},
		logger:  log,
	}

	a.store = o.store
	if a.store == nil {
		store, err := a.openStore(ctx)
		if err != nil {
			return nil, errors.Join(ErrTokenStoreSetup, err)
		}
		a.store = store
	}

	clientOpts := append([]apiclient.Option{
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithUserAgent(cfg.UserAgent),
		apiclient.WithLogger(log),
	}, o.clientOpts...)
	a.Client = apiclient.New(cfg.APIBaseURL, clientOpts...)

	mgr, err := session.New(a.store, a.Client,
		session.WithLogger(log),
		session.WithLoginAfterRegister(cfg.LoginAfterRegister),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Session = mgr
	a.Checkout = checkout.New(mgr, a.Client, checkout.WithLogger(log))

	return a, nil
}

// Close releases the redis connection when one was opened.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	return err
}

// Health checks the backend API and, when configured, the redis token store.
func (a *App) Health(ctx context.Context) health.Report {
	checks := []health.Check{health.Named("api", a.Client.Health)}
	if a.redis != nil {
		checks = append(checks, health.Named("redis", redisdb.Healthcheck(a.redis)))
	}
	return health.Readiness(ctx, a.logger, checks...)
}

// EmailPrompt opens a new capture prompt. An empty source uses the configured one.
func (a *App) EmailPrompt(source string) *emailcapture.Prompt {
	if source == "" {
		source = a.Config.EmailSource
	}
	return emailcapture.New(a.Client,
		emailcapture.WithSource(source),
		emailcapture.WithCloseDelay(a.Config.EmailCloseDelay),
		emailcapture.WithLogger(a.logger),
	)
}

// Outcome is the result of Dispatch.
type Outcome struct {
	Decision gate.Decision
	// Redirect is set when a checkout was started.
	Redirect *checkout.Redirect
}

// Dispatch decides intent against the current session. Prompt decisions
// park the intent in Pending so Resume can replay it after the prompt.
// Reject decisions return an Error carrying the decision message.
func (a *App) Dispatch(ctx context.Context, intent gate.Intent) (Outcome, error) {
	snap := a.Session.Snapshot()
	d := a.Policy.Decide(snap.Status, intent)
	out := Outcome{Decision: d}

	a.logger.DebugContext(ctx, "gate decision",
		logger.Component("gate"),
		logger.Action(intent.Action.String()),
		logger.Result(d.Kind.String()),
		logger.Status(snap.Status.String()),
		logger.Epoch(snap.Epoch),
	)

	switch d.Kind {
	case gate.PromptAuth, gate.PromptEmailCapture:
		a.Pending.Set(intent)
		return out, nil
	case gate.Reject:
		code := ErrInternal.Code
		if intent.Action == gate.PurchasePackage {
			code = ErrLoginRequired.Code
		}
		return out, Error{Code: code, Message: d.Message}
	}

	var (
		r   checkout.Redirect
		err error
	)
	switch d.Target {
	case gate.TargetCheckout:
		r, err = a.Checkout.StartCheckout(ctx, d.PackageID)
	case gate.TargetConsultationCheckout:
		r, err = a.Checkout.StartConsultation(ctx)
	default:
		return out, nil
	}
	if err != nil {
		return out, err
	}
	out.Redirect = &r
	return out, nil
}

// Resume replays the pending intent, if any.
func (a *App) Resume(ctx context.Context) (Outcome, bool, error) {
	intent, ok := a.Pending.Take()
	if !ok {
		return Outcome{}, false, nil
	}
	out, err := a.Dispatch(ctx, intent)
	return out, true, err
}

func (a *App) openStore(ctx context.Context) (tokenstore.Store, error) {
	switch a.Config.TokenStore {
	case TokenStoreMemory:
		return tokenstore.NewMemoryStore(), nil
	case TokenStoreRedis:
		client, err := redisdb.Connect(ctx, a.Config.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
		opts := []redisstore.Option{redisstore.WithLogger(a.logger)}
		if a.Config.TokenKey != "" {
			opts = append(opts, redisstore.WithKey(a.Config.TokenKey))
		}
		return redisstore.New(client, opts...), nil
	case TokenStoreFile:
		path := a.Config.TokenFile
		if path == "" {
			path = tokenstore.DefaultPath()
		}
		opts := []tokenstore.FileOption{tokenstore.WithFileLogger(a.logger)}
		if a.Config.TokenKey != "" {
			opts = append(opts, tokenstore.WithFileKey(a.Config.TokenKey))
		}
		return tokenstore.NewFileStore(path, opts...), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", a.Config.TokenStore)
	}
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...)
}
