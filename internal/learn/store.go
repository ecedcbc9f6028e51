package learn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Garsondee/Lawn-Sense/internal/agent"
)

// ErrCorruptPersistentState is wrapped by loaders when a file exists but
// cannot be decoded. Callers log it and continue with defaults.
var ErrCorruptPersistentState = errors.New("corrupt persistent state")

// EvolutionRecord is the on-disk form of an Evolution.
type EvolutionRecord struct {
	Generation int             `json:"generation"`
	Episodes   int             `json:"episodes"`
	BestScore  int             `json:"best_score"`
	BestLevel  int             `json:"best_level"`
	Genome     agent.Genome    `json:"genome"`
	History    []EpisodeRecord `json:"history"`
}

// ValueRecord is the on-disk form of a ValuePolicy.
type ValueRecord struct {
	QTable   map[StateKey]map[Macro]float64 `json:"q_table"`
	Epsilon  float64                        `json:"epsilon"`
	Episodes int                            `json:"episodes"`
}

// SaveEvolution writes ev to path.
func SaveEvolution(path string, ev *Evolution) error {
	return saveJSON(path, EvolutionRecord{
		Generation: ev.Generation,
		Episodes:   ev.Episodes,
		BestScore:  ev.BestScore,
		BestLevel:  ev.BestLevel,
		Genome:     ev.Genome,
		History:    ev.History,
	})
}

// LoadEvolution restores ev from path. A missing file leaves ev untouched
// and returns nil; an unreadable one leaves ev untouched and returns an
// error wrapping ErrCorruptPersistentState. A record without a genome keeps
// the default weights.
func LoadEvolution(path string, ev *Evolution) error {
	rec := EvolutionRecord{Genome: agent.DefaultGenome()}
	found, err := loadJSON(path, &rec)
	if err != nil || !found {
		return err
	}
	if err := rec.Genome.Valid(); err != nil {
		return fmt.Errorf("decode %s: %w: %w", path, ErrCorruptPersistentState, err)
	}
	ev.Generation = rec.Generation
	ev.Episodes = rec.Episodes
	ev.BestScore = rec.BestScore
	ev.BestLevel = rec.BestLevel
	ev.Genome = rec.Genome
	ev.History = rec.History
	if n := ev.cfg.HistorySize; n > 0 && len(ev.History) > n {
		ev.History = ev.History[len(ev.History)-n:]
	}
	return nil
}

// SaveValuePolicy writes the table and exploration state of p to path.
func SaveValuePolicy(path string, p *ValuePolicy) error {
	return saveJSON(path, ValueRecord{
		QTable:   p.Table.Q,
		Epsilon:  p.Epsilon,
		Episodes: p.Episodes,
	})
}

// LoadValuePolicy restores p from path with the same missing/corrupt
// semantics as LoadEvolution.
func LoadValuePolicy(path string, p *ValuePolicy) error {
	var rec ValueRecord
	found, err := loadJSON(path, &rec)
	if err != nil || !found {
		return err
	}
	if rec.QTable == nil {
		rec.QTable = map[StateKey]map[Macro]float64{}
	}
	p.Table.Q = rec.QTable
	p.Epsilon = max(p.cfg.EpsilonMin, rec.Epsilon)
	p.Episodes = rec.Episodes
	return nil
}

// SavePolicy persists p's learned state to path. Policies without learned
// state are a no-op.
func SavePolicy(path string, p Policy) error {
	switch pp := p.(type) {
	case *EvolutionPolicy:
		return SaveEvolution(path, pp.Evo)
	case *ValuePolicy:
		return SaveValuePolicy(path, pp)
	default:
		return nil
	}
}

// LoadPolicy restores p's learned state from path.
func LoadPolicy(path string, p Policy) error {
	switch pp := p.(type) {
	case *EvolutionPolicy:
		return LoadEvolution(path, pp.Evo)
	case *ValuePolicy:
		return LoadValuePolicy(path, pp)
	default:
		return nil
	}
}

// LoadPolicyOrDefaults is LoadPolicy for entry points that must keep
// running: any load error is logged and p keeps its defaults. It reports
// whether saved state was applied.
func LoadPolicyOrDefaults(path string, p Policy, logger *slog.Logger) bool {
	if path == "" {
		return false
	}
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err := LoadPolicy(path, p); err != nil {
		logger.Warn("ignoring saved state", "path", path, "error", err)
		return false
	}
	logger.Info("policy state loaded", "path", path, "policy", p.Name())
	return true
}

// saveJSON writes v next to path and renames it into place so a crash never
// leaves a half-written file.
func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// loadJSON decodes path into v. It reports found=false for a missing file.
func loadJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w: %w", path, ErrCorruptPersistentState, err)
	}
	return true, nil
}
