package learn

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// DefaultRewardFormula is evaluated after every value-table transition.
// The trailing progress term is paid on every update, on top of the
// per-wave bonus; set ProgressWeight to 0 to drop it.
const DefaultRewardFormula = `(GameOver ? -50.0 : ActionBonus + ResourceGain * 0.02 + EnemyHits * 0.1 + EnemiesDefeated * 2.0 - UnitsLost * 1.0 + WavesAdvanced * 5.0) + Progress * ProgressWeight`

// DefaultProgressWeight scales the cumulative progress term.
const DefaultProgressWeight = 0.1

// RewardEnv is the variable set visible to a reward formula.
type RewardEnv struct {
	GameOver        bool
	ActionBonus     float64
	ResourceGain    int
	EnemyHits       int
	EnemiesDefeated int
	UnitsLost       int
	WavesAdvanced   int
	Progress        int
	ProgressWeight  float64
}

// Reward is a compiled reward formula.
type Reward struct {
	source         string
	program        *vm.Program
	progressWeight float64
}

// NewReward compiles src. An empty src selects DefaultRewardFormula.
func NewReward(src string, progressWeight float64) (*Reward, error) {
	if src == "" {
		src = DefaultRewardFormula
	}
	program, err := expr.Compile(src, expr.Env(RewardEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile reward %q: %w", src, err)
	}
	return &Reward{source: src, program: program, progressWeight: progressWeight}, nil
}

// Source returns the formula text.
func (r *Reward) Source() string { return r.source }

// actionBonus is the shaping term for the macro just taken.
func actionBonus(m Macro) float64 {
	switch m {
	case MacroWait:
		return -0.1
	case MacroCollect:
		return 1.0
	case MacroSunflowerBack, MacroPeashooterMid:
		return 0.8 // placement plus good-position bonus
	case MacroWallnutFront, MacroRepeaterMid:
		return 0.5
	default:
		return 0
	}
}

// Env builds the formula inputs for the transition prev -> next after taking m.
func (r *Reward) Env(prev, next *game.Snapshot, m Macro) RewardEnv {
	d := next.Stats.Delta(prev.Stats)
	return RewardEnv{
		GameOver:        next.GameOver,
		ActionBonus:     actionBonus(m),
		ResourceGain:    d.ResourcesCollected,
		EnemyHits:       d.ProjectileHits,
		EnemiesDefeated: d.EnemiesDefeated,
		UnitsLost:       d.UnitsLost,
		WavesAdvanced:   d.WavesCleared,
		Progress:        next.Progress(),
		ProgressWeight:  r.progressWeight,
	}
}

// Eval runs the formula against env.
func (r *Reward) Eval(env RewardEnv) (float64, error) {
	out, err := vm.Run(r.program, env)
	if err != nil {
		return 0, fmt.Errorf("eval reward: %w", err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("eval reward: got %T, want float64", out)
	}
	return v, nil
}

// Transition is Env followed by Eval.
func (r *Reward) Transition(prev, next *game.Snapshot, m Macro) (float64, error) {
	return r.Eval(r.Env(prev, next, m))
}
