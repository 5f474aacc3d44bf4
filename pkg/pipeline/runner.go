package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fpgroups/pkg/cache"
	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/fpgroup"
	"github.com/matzehuels/fpgroups/pkg/observability"
)

// Runner executes analyses with caching. It holds no per-run state, so one
// Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// selects the default one.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the analysis described by opts, serving it from the cache
// when possible.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	G, err := opts.Presentation().Group()
	if err != nil {
		return nil, err
	}

	key := r.Keyer.AnalysisKey(opts.Kind, opts.KeyOpts())
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "analysis")
			r.Logger.Debug("analysis served from cache", "kind", opts.Kind, "key", key)
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	res, err := r.Run(ctx, G, opts)
	if err != nil {
		return nil, err
	}
	res.CacheInfo = CacheInfo{Key: key}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLReport); err != nil {
			r.Logger.Warn("could not cache analysis", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}
	return res, nil
}

// Run performs the analysis without consulting the cache.
func (r *Runner) Run(ctx context.Context, G *fpgroup.Group, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Enumeration()
	hooks.OnEnumerationStart(ctx, opts.Kind)
	start := time.Now()

	res := &Result{Kind: opts.Kind, Group: G.String()}
	var err error
	switch opts.Kind {
	case KindCosets:
		res.Cosets, err = Cosets(ctx, G, opts)
		if err == nil {
			res.Stats.Size = res.Cosets.Size()
		}
	case KindSubgroups:
		res.Subgroups, res.Stats.Choices, err = Subgroups(ctx, G, opts)
		res.Stats.Size = len(res.Subgroups)
	case KindInvariants:
		inv := NewInvariants(G.AbelianInvariants())
		res.Invariants = &inv
		res.Stats.Size = len(inv.Values)
	case KindStabilizer:
		res.Stabilizer, err = Stabilizer(ctx, G, opts)
		if err == nil {
			res.Stats.Size = len(res.Stabilizer.Generators)
		}
	}
	res.Stats.Duration = time.Since(start)
	hooks.OnEnumerationComplete(ctx, opts.Kind, res.Stats.Size, res.Stats.Duration, err)

	if err != nil {
		opts.Logger.Debug("analysis failed", "kind", opts.Kind, "code", errors.GetCode(err), "duration", res.Stats.Duration)
		return nil, err
	}
	r.Logger.Info("analysis complete",
		"kind", opts.Kind,
		"size", res.Stats.Size,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	res.CacheInfo = CacheInfo{Key: key, Hit: true}
	return &res, true
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options that have none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
