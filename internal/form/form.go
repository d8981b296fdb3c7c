package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/internal/mailto"
	"a11ypack/internal/validation"
)

// Input is the HTML control used to render a field.
type Input string

const (
	InputText     Input = "text"
	InputEmail    Input = "email"
	InputTel      Input = "tel"
	InputTextarea Input = "textarea"
	InputCheckbox Input = "checkbox"
)

// FieldSpec declares one field of a form. Fields are validated and focused
// in declaration order.
type FieldSpec struct {
	Key      string
	Required bool
	Kind     validation.Kind
	Input    Input
}

// Values maps field keys to raw submitted strings.
type Values map[string]string

// PayloadFunc builds the outbound message for a valid set of values.
type PayloadFunc func(lang i18n.Language, values Values) mailto.Message

// Definition describes a form independently of any controller instance.
type Definition struct {
	ID           string
	Fields       []FieldSpec
	DismissAfter time.Duration
	Payload      PayloadFunc
}

// Field returns the FieldSpec declared for key.
func (d Definition) Field(key string) (FieldSpec, bool) {
	for _, field := range d.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// Validate runs every declared field through the validation engine and
// returns the complete error map plus the first failing key.
func (d Definition) Validate(values Values) (map[string]error, string) {
	errs := make(map[string]error)
	focus := ""
	for _, field := range d.Fields {
		if err := validation.ValidateField(field.Kind, field.Required, values[field.Key]); err != nil {
			errs[field.Key] = err
			if focus == "" {
				focus = field.Key
			}
		}
	}
	return errs, focus
}

// Phase is the lifecycle position of a form instance.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseInvalid    Phase = "invalid"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is a snapshot of a controller.
type State struct {
	Values    Values
	Errors    map[string]error
	Phase     Phase
	Attempted bool
	Focus     string
	Reference string
	MailtoURI string
	Err       error
}

// HasError reports whether key currently holds an error.
func (s State) HasError(key string) bool {
	_, ok := s.Errors[key]
	return ok
}

// Result reports the outcome of one Submit call.
type Result struct {
	Phase     Phase
	Errors    map[string]error
	Focus     string
	Reference string
	Message   mailto.Message
	Err       error
}

// Sink receives the message of a valid submission.
type Sink interface {
	Handoff(ctx context.Context, msg mailto.Message) error
}

// Timer is the subset of *time.Timer used by the controller.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Controller.
type Option func(*Controller)

// WithAfterFunc replaces the scheduler used for the dismiss timer.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Controller) {
		c.afterFunc = fn
	}
}

// WithReferences replaces the generator of submission references.
func WithReferences(fn func() string) Option {
	return func(c *Controller) {
		c.newReference = fn
	}
}

// Controller drives one form instance through validation and hand-off.
type Controller struct {
	def  Definition
	sink Sink

	afterFunc    AfterFunc
	newReference func() string

	mu         sync.Mutex
	state      State
	timer      Timer
	generation uint64
	closed     bool
}

// NewController returns a controller in PhaseIdle with every declared field empty.
func NewController(def Definition, sink Sink, opts ...Option) *Controller {
	c := &Controller{
		def:  def,
		sink: sink,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		newReference: func() string {
			return uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = InitialState(def)
	return c
}

// InitialState is the idle state of def with every declared field empty.
func InitialState(def Definition) State {
	return State{
		Values: emptyValues(def),
		Errors: make(map[string]error),
		Phase:  PhaseIdle,
	}
}

func emptyValues(def Definition) Values {
	values := make(Values, len(def.Fields))
	for _, field := range def.Fields {
		values[field.Key] = ""
	}
	return values
}

// Definition returns the form definition.
func (c *Controller) Definition() Definition {
	return c.def
}

// Change stores a field value and drops that field's stale error. It does not validate.
func (c *Controller) Change(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.def.Field(key); !ok {
		return
	}
	c.state.Values[key] = value
	delete(c.state.Errors, key)
	if c.state.Focus == key {
		c.state.Focus = ""
	}
}

// Fill applies Change for every declared field present in values.
func (c *Controller) Fill(values Values) {
	for _, field := range c.def.Fields {
		if value, ok := values[field.Key]; ok {
			c.Change(field.Key, value)
		}
	}
}

// Submit validates every field and, when all pass, hands the payload to the sink.
func (c *Controller) Submit(ctx context.Context, lang i18n.Language) Result {
	c.mu.Lock()
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		return Result{Phase: PhaseSubmitting, Err: a11yerrors.ErrSubmissionInProgress}
	}
	c.state.Attempted = true
	c.state.Err = nil
	c.state.Reference = ""
	c.state.MailtoURI = ""

	errs, focus := c.def.Validate(c.state.Values)
	if len(errs) > 0 {
		c.stopTimerLocked()
		c.state.Phase = PhaseInvalid
		c.state.Errors = errs
		c.state.Focus = focus
		c.mu.Unlock()
		logger.FormEvent(c.def.ID, string(PhaseInvalid)).
			Strs("fields", errorKeys(c.def, errs)).
			Msg("Form submission rejected by validation")
		return Result{Phase: PhaseInvalid, Errors: copyErrors(errs), Focus: focus}
	}

	c.state.Phase = PhaseSubmitting
	c.state.Errors = make(map[string]error)
	c.state.Focus = ""
	values := copyValues(c.state.Values)
	c.mu.Unlock()

	msg := c.def.Payload(lang, values)
	err := c.sink.Handoff(ctx, msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, a11yerrors.ErrSubmissionFailed) {
			err = fmt.Errorf("%w: %v", a11yerrors.ErrSubmissionFailed, err)
		}
		c.state.Phase = PhaseFailed
		c.state.Err = err
		c.armTimerLocked()
		logger.FormEvent(c.def.ID, string(PhaseFailed)).Err(err).Msg("Form hand-off failed")
		return Result{Phase: PhaseFailed, Err: err, Message: msg}
	}

	reference := c.newReference()
	c.state.Phase = PhaseSucceeded
	c.state.Values = emptyValues(c.def)
	c.state.Reference = reference
	c.state.MailtoURI = mailto.BuildURI(msg)
	c.armTimerLocked()
	logger.FormEvent(c.def.ID, string(PhaseSucceeded)).
		Str("reference", reference).
		Msg("Form handed off to mail client")
	return Result{Phase: PhaseSucceeded, Reference: reference, Message: msg}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Values = copyValues(c.state.Values)
	s.Errors = copyErrors(c.state.Errors)
	return s
}

// Close cancels a pending dismiss timer. A timer that already fired has no
// effect once Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimerLocked()
}

func (c *Controller) armTimerLocked() {
	c.stopTimerLocked()
	if c.closed || c.def.DismissAfter <= 0 {
		return
	}
	generation := c.generation
	c.timer = c.afterFunc(c.def.DismissAfter, func() {
		c.dismiss(generation)
	})
}

func (c *Controller) stopTimerLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) dismiss(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || generation != c.generation {
		return
	}
	if c.state.Phase != PhaseSucceeded && c.state.Phase != PhaseFailed {
		return
	}
	c.state.Phase = PhaseIdle
	c.state.Err = nil
	c.timer = nil
}

func errorKeys(def Definition, errs map[string]error) []string {
	keys := make([]string, 0, len(errs))
	for _, field := range def.Fields {
		if _, ok := errs[field.Key]; ok {
			keys = append(keys, field.Key)
		}
	}
	return keys
}

func copyValues(values Values) Values {
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func copyErrors(errs map[string]error) map[string]error {
	out := make(map[string]error, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
