package wizard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/heram/storefront/internal/cache"
	"github.com/heram/storefront/internal/constants"
	"github.com/heram/storefront/internal/log"
	"github.com/heram/storefront/internal/otel"
)

// Step is one stage of a linear flow. Complete gates the forward
// transition out of it.
type Step struct {
	ID       string
	Label    string
	Complete func() bool
}

// Machine is a linear, resumable step machine: forward only on an explicit
// Next gated by the current step's completeness, backward unrestricted,
// never skipping.
type Machine struct {
	steps   []Step
	current int
	mirror  cache.Mirror
}

func NewMachine(steps []Step, mirror cache.Mirror) *Machine {
	return &Machine{steps: steps, mirror: mirror}
}

func (m *Machine) Steps() []Step {
	return m.steps
}

func (m *Machine) CurrentIndex() int {
	return m.current
}

func (m *Machine) Current() Step {
	return m.steps[m.current]
}

// Next advances exactly one step when the current step is complete and is
// a no-op otherwise. It reports whether the machine advanced.
func (m *Machine) Next(c context.Context) bool {
	c, span := otel.Tracer.Start(c, "Machine Next")
	defer span.End()

	step := m.steps[m.current]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Machine Next").
		Str(log.KEY_STEP_ID, step.ID).
		Int(log.KEY_STEP_INDEX, m.current).
		Logger()

	if !step.Complete() {
		logger.Info().Msg("current step incomplete, staying")
		return false
	}
	if m.current == len(m.steps)-1 {
		logger.Info().Msg("already on last step, staying")
		return false
	}

	m.current++
	logger.Info().Msgf("advanced to stepIndex=%d", m.current)
	m.persistProgress(c)
	return true
}

// Back moves one step backward, unrestricted.
func (m *Machine) Back(c context.Context) bool {
	if m.current == 0 {
		return false
	}
	m.current--
	m.persistProgress(c)
	return true
}

// Done reports whether every step's completeness predicate holds.
func (m *Machine) Done() bool {
	for _, step := range m.steps {
		if !step.Complete() {
			return false
		}
	}
	return true
}

type progress struct {
	Current   int   `json:"current"`
	Completed []int `json:"completed"`
}

func (m *Machine) persistProgress(c context.Context) {
	if m.mirror == nil {
		return
	}
	completed := []int{}
	for i := range m.steps {
		if i < m.current {
			completed = append(completed, i)
		}
	}
	err := m.mirror.Put(c, constants.KEY_CACHE_STEPPER_PROGRESS, progress{
		Current:   m.current,
		Completed: completed,
	})
	if err != nil {
		zerolog.Ctx(c).Error().Err(err).Msg("failed persisting stepper progress")
	}
}

// RestoreProgress resumes the machine from the persisted step index when
// one exists and is still in range.
func (m *Machine) RestoreProgress(c context.Context) {
	if m.mirror == nil {
		return
	}
	saved := progress{}
	err := m.mirror.Get(c, constants.KEY_CACHE_STEPPER_PROGRESS, &saved)
	if err != nil {
		zerolog.Ctx(c).Trace().Err(err).Msg("no stepper progress to restore")
		return
	}
	if saved.Current < 0 || saved.Current >= len(m.steps) {
		return
	}
	m.current = saved.Current
}
