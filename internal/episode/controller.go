// Package episode drives complete games: it steps the engine, asks the policy
// for actions on decision ticks, and hands the outcome back to the policy
// before resetting for the next run.
package episode

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
)

// Config controls episode pacing.
type Config struct {
	// DecisionInterval is the number of ticks between policy decisions.
	DecisionInterval int
	// MaxTicks caps an episode. 0 disables the cap.
	MaxTicks int
}

// DefaultConfig returns half-second decisions and a ten-minute cap at 60 TPS.
func DefaultConfig() Config {
	return Config{
		DecisionInterval: 30,
		MaxTicks:         36000,
	}
}

// Result summarises one finished episode.
type Result struct {
	ID        string
	Index     int
	Policy    string
	Outcome   game.Outcome
	Decisions int
	Rejected  int
	// Capped is set when the episode hit MaxTicks instead of a breach.
	Capped   bool
	Duration time.Duration
}

// Controller owns one engine and one policy for a sequence of episodes.
type Controller struct {
	engine *game.Engine
	policy learn.Policy
	cfg    Config
	logger *slog.Logger

	newID func() string
	now   func() time.Time

	// fresh is set until the first episode starts; that episode plays
	// from the engine's state as handed to New.
	fresh bool

	// per-episode state
	active    bool
	id        string
	index     int
	decisions int
	rejected  int
	started   time.Time

	results []Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDSource replaces uuid generation, for reproducible ids in tests.
func WithIDSource(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// New builds a controller. The first episode starts from the engine's
// current state; later episodes start from a Reset.
func New(engine *game.Engine, policy learn.Policy, cfg Config, opts ...Option) (*Controller, error) {
	if engine == nil || policy == nil {
		return nil, fmt.Errorf("episode: engine and policy are required")
	}
	if cfg.DecisionInterval <= 0 {
		return nil, fmt.Errorf("episode: decision interval must be positive, got %d", cfg.DecisionInterval)
	}
	if cfg.MaxTicks < 0 {
		return nil, fmt.Errorf("episode: max ticks must not be negative, got %d", cfg.MaxTicks)
	}
	c := &Controller{
		engine: engine,
		policy: policy,
		cfg:    cfg,
		logger: slog.Default(),
		newID:  uuid.NewString,
		now:    time.Now,
		fresh:  true,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Engine exposes the simulation for rendering.
func (c *Controller) Engine() *game.Engine { return c.engine }

// Policy returns the policy being trained.
func (c *Controller) Policy() learn.Policy { return c.policy }

// Results returns every completed episode in order.
func (c *Controller) Results() []Result { return c.results }

// EpisodeID is the id of the running episode, or "" between episodes.
func (c *Controller) EpisodeID() string {
	if !c.active {
		return ""
	}
	return c.id
}

// Last returns the most recent result.
func (c *Controller) Last() (Result, bool) {
	if len(c.results) == 0 {
		return Result{}, false
	}
	return c.results[len(c.results)-1], true
}

func (c *Controller) begin() {
	if !c.fresh {
		c.engine.Reset()
	}
	c.fresh = false
	c.active = true
	c.id = c.newID()
	c.index++
	c.decisions = 0
	c.rejected = 0
	c.started = c.now()
	c.policy.BeginEpisode(c.id)
	c.logger.Debug("episode started", "id", c.id, "index", c.index, "policy", c.policy.Name())
}

// Tick advances the running episode by one simulation tick, starting a new
// episode first if none is active. It returns the result and true on the
// tick the episode ends.
func (c *Controller) Tick() (Result, bool) {
	if !c.active {
		c.begin()
	}
	e := c.engine
	e.Step()

	capped := c.cfg.MaxTicks > 0 && e.Tick() >= c.cfg.MaxTicks
	if e.GameOver() || capped {
		return c.finish(capped), true
	}

	if e.Tick()%c.cfg.DecisionInterval == 0 {
		a := c.policy.Decide(e.Snapshot())
		c.decisions++
		if err := e.Apply(a); err != nil {
			c.rejected++
			c.logger.Debug("action rejected", "tick", e.Tick(), "action", a.String(), "error", err)
		}
	}
	return Result{}, false
}

func (c *Controller) finish(capped bool) Result {
	e := c.engine
	out := e.Outcome()
	c.policy.EndEpisode(e.Snapshot(), out)

	r := Result{
		ID:        c.id,
		Index:     c.index,
		Policy:    c.policy.Name(),
		Outcome:   out,
		Decisions: c.decisions,
		Rejected:  c.rejected,
		Capped:    capped,
		Duration:  c.now().Sub(c.started),
	}
	c.results = append(c.results, r)
	c.active = false
	c.logger.Info("episode finished",
		"id", r.ID,
		"index", r.Index,
		"policy", r.Policy,
		"level", out.Level,
		"wave", out.Wave,
		"progress", out.Progress,
		"ticks", out.Ticks,
		"capped", capped)
	return r
}

// Abandon drops the running episode without reporting it to the policy.
func (c *Controller) Abandon() {
	if !c.active {
		return
	}
	c.logger.Warn("episode abandoned", "id", c.id, "tick", c.engine.Tick())
	c.active = false
	c.fresh = false
	c.engine.Reset()
}

// RunEpisode plays one episode to a breach or the tick cap. If ctx is
// cancelled first, the episode is abandoned and ctx's error returned.
func (c *Controller) RunEpisode(ctx context.Context) (Result, error) {
	if c.active {
		c.Abandon()
	}
	for {
		if err := ctx.Err(); err != nil {
			c.Abandon()
			return Result{}, fmt.Errorf("episode %d: %w", c.index, err)
		}
		if r, done := c.Tick(); done {
			return r, nil
		}
	}
}

// Run plays n episodes, stopping early on cancellation. It returns the
// results completed so far.
func (c *Controller) Run(ctx context.Context, n int) ([]Result, error) {
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		r, err := c.RunEpisode(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}
