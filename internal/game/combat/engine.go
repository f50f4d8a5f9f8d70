package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

// State is the engine lifecycle stage.
type State int

const (
	StateConstructing State = iota
	StateRunning
	StateTerminated
	StateAnalyzed
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateAnalyzed:
		return "analyzed"
	default:
		return "unknown"
	}
}

// Engine runs one battle from placement to result. An Engine owns its map and
// roster exclusively and is not safe for concurrent use.
type Engine struct {
	cfg        Config
	src        dice.Source
	logger     *zap.Logger
	combatants []Combatant
	m          *grid.Map
	state      State
}

// NewEngine builds the map for bf and places every combatant at random.
//
// Precondition: src and logger must be non-nil; bf.Capacity() must be at least
// len(bf.Combatants) or placement never returns.
// Postcondition: Returns an engine in StateConstructing, ErrUserAlreadyOnMap when two
// combatants share a name, or a config error.
func NewEngine(bf Battlefield, cfg Config, src dice.Source, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{
		cfg:        cfg,
		src:        src,
		logger:     logger,
		combatants: make([]Combatant, len(bf.Combatants)),
		m:          grid.NewMap(bf.Width, bf.Height),
		state:      StateConstructing,
	}
	copy(e.combatants, bf.Combatants)

	for _, c := range e.combatants {
		p, err := e.m.PlaceRandomly(src, c.Name)
		if err != nil {
			return nil, err
		}
		logger.Debug("combatant placed",
			zap.String("combatant", c.Name),
			zap.Stringer("position", p),
		)
	}
	return e, nil
}

// State returns the current lifecycle stage.
func (e *Engine) State() State { return e.state }

// Map returns a copy of the engine's initial placement.
func (e *Engine) Map() *grid.Map { return e.m.Clone() }

// Combatants returns a copy of the starting roster.
func (e *Engine) Combatants() []Combatant {
	out := make([]Combatant, len(e.combatants))
	copy(out, e.combatants)
	return out
}

// Start plays rounds while at least two combatants are alive and the round
// number has not passed cfg.MaxRounds, then analyzes the final state.
//
// Postcondition: on success the engine is in StateAnalyzed and the result's Round
// is at most cfg.MaxRounds+1. Any kernel error aborts the battle and no result is
// returned. A second call returns ErrBattleAlreadyStarted.
func (e *Engine) Start() (*Result, error) {
	if e.state != StateConstructing {
		return nil, fmt.Errorf("%w: engine is %s", ErrBattleAlreadyStarted, e.state)
	}
	e.state = StateRunning
	e.logger.Info("battle started",
		zap.Int("combatants", len(e.combatants)),
		zap.Uint8("width", e.m.Width()),
		zap.Uint8("height", e.m.Height()),
		zap.Uint32("max_rounds", e.cfg.MaxRounds),
	)

	state := RoundState{
		Combatants: e.Combatants(),
		Map:        e.m.Clone(),
	}
	for state.AliveCount() >= 2 && state.Round <= e.cfg.MaxRounds {
		next, err := ResolveRound(state.Round+1, state, e.cfg.MaxSteps, e.src)
		if err != nil {
			e.state = StateTerminated
			e.logger.Warn("battle aborted",
				zap.Uint32("round", state.Round+1),
				zap.Error(err),
			)
			return nil, fmt.Errorf("round %d: %w", state.Round+1, err)
		}
		e.logger.Debug("round resolved",
			zap.Uint32("round", next.Round),
			zap.Int("alive", next.AliveCount()),
			zap.Int("actions", len(next.Actions)-len(state.Actions)),
		)
		state = next
	}
	e.state = StateTerminated

	res := Analyze(state)
	e.state = StateAnalyzed

	fields := []zap.Field{
		zap.Uint32("rounds", res.RoundsPlayed()),
		zap.Int("survivors", len(res.Survivors())),
		zap.Bool("stalemate", res.Stalemate),
	}
	if res.Winner != nil {
		fields = append(fields, zap.String("winner", res.Winner.Name))
	}
	e.logger.Info("battle finished", fields...)
	return res, nil
}
