package layout

import (
	errs "github.com/matzehuels/strata/pkg/errors"
)

// Engine lays out graphs with a fixed configuration. It keeps no state
// between calls and is safe for concurrent use on distinct graphs.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an engine using it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

type phase struct {
	name  string
	run   func()
	check func() error
}

// Layout positions every vertex of g and routes every link, then reports
// statistics about the drawing.
//
// Links listed in important are kept pointing downward whenever possible:
// cycle breaking first follows them before any other link. They are matched
// against g.Links() with ==, so link implementations must be comparable.
//
// Nothing is written to g when an error is returned.
func (e *Engine) Layout(g Graph, important ...Link) (Stats, error) {
	if e.cfg.Combine == CombineSameInputs {
		return Stats{}, errs.Wrap(errs.ErrCodeUnsupported, ErrUnsupportedCombine, "%s", e.cfg.Combine)
	}

	s, err := newState(e.cfg, g, important)
	if err != nil {
		return Stats{}, err
	}

	phases := []phase{
		{"cycles", s.breakCycles, s.checkAcyclic},
		{"layers", s.assignLayers, s.checkLayering},
		{"dummies", s.insertDummies, s.checkDummies},
		{"crossings", s.reduceCrossings, s.checkOrdering},
		{"x", s.assignX, s.checkSpacing},
		{"y", s.assignY, s.checkBands},
	}
	for _, p := range phases {
		p.run()
		if !e.cfg.CheckInvariants {
			continue
		}
		if err := p.check(); err != nil {
			return Stats{}, errs.Wrap(errs.ErrCodeInternal, err, "after %s phase", p.name)
		}
	}

	d, err := s.buildDrawing()
	if err != nil {
		return Stats{}, errs.Wrap(errs.ErrCodeInternal, err, "writing result")
	}
	if e.cfg.CheckInvariants {
		if err := d.checkRoutes(); err != nil {
			return Stats{}, errs.Wrap(errs.ErrCodeInternal, err, "writing result")
		}
	}

	d.apply(s.vertices, s.links)
	return s.stats(d), nil
}
