package cpf

// solve.go: Solver, validation, check-digit completion and body search.
//
// Three outcomes are possible for a parsed CPF:
//   - body fully known, no placeholders     → valid or invalid
//   - body fully known, check digits open   → the single completed CPF
//   - body has holes                        → every matching completion,
//                                             ascending, or "not found"

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// User-facing messages, one per informational outcome.
const (
	MessageValid       = "O CPF é matematicamente válido."
	MessageInvalid     = "O CPF é inválido."
	MessageNotFound    = "Nenhum CPF foi encontrado."
	MessageFormatError = "Error: O formato do CPF está incorreto."
)

// Status classifies the outcome of a solve.
type Status int

const (
	StatusFormatError Status = iota
	StatusValid
	StatusCompleted
	StatusInvalid
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusFormatError:
		return "format_error"
	case StatusValid:
		return "valid"
	case StatusCompleted:
		return "completed"
	case StatusInvalid:
		return "invalid"
	case StatusNotFound:
		return "not_found"
	}
	return "unknown"
}

// Result is the outcome of solving one input.
type Result struct {
	Input      string
	Canonical  Canonical // empty when Status is StatusFormatError
	Status     Status
	Found      int      // completed CPFs produced, streamed or collected
	Candidates []string // formatted CPFs, ascending; filled by Solve, not Each
	Err        error    // the *FormatError for StatusFormatError
}

// Lines returns the output lines for r, in presentation order.
func (r Result) Lines() []string {
	switch r.Status {
	case StatusFormatError:
		return []string{MessageFormatError}
	case StatusValid:
		return []string{MessageValid}
	case StatusCompleted:
		return append([]string(nil), r.Candidates...)
	case StatusInvalid:
		return []string{MessageInvalid}
	case StatusNotFound:
		return []string{MessageNotFound}
	}
	return nil
}

// Option configures a Solver.
type Option func(*Solver)

// WithStrict rejects input with characters after the CPF.
func WithStrict(strict bool) Option {
	return func(s *Solver) { s.strict = strict }
}

// WithWorkers searches body holes with n goroutines. Values below 2 keep the
// search sequential.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// Solver validates and completes CPFs. The zero value is not usable; call
// NewSolver. A Solver holds no per-solve state and is safe for concurrent use.
type Solver struct {
	strict  bool
	workers int
	log     *zap.Logger
}

// NewSolver returns a sequential, lenient Solver with logging disabled.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{workers: 1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve is the pure form of Solver.Solve with default options: it maps one
// input to its output lines.
func Solve(raw string) []string {
	res, _ := NewSolver().Solve(context.Background(), raw)
	return res.Lines()
}

// Solve resolves raw and collects every completed CPF into
// Result.Candidates. Searches with many open digits can produce millions of
// matches; use Each to process them without holding them all.
func (s *Solver) Solve(ctx context.Context, raw string) (Result, error) {
	var found []string
	res, err := s.Each(ctx, raw, func(cpf string) error {
		found = append(found, cpf)
		return nil
	})
	res.Candidates = found
	return res, err
}

// Each parses raw and resolves it, passing every completed CPF to yield in
// ascending order as soon as it is known. The returned error is non-nil only
// when ctx is cancelled during a body search or yield fails; every other
// outcome, including a malformed input, is reported through Result.Status.
func (s *Solver) Each(ctx context.Context, raw string, yield func(cpf string) error) (Result, error) {
	res := Result{Input: raw}

	parse := Unformat
	if s.strict {
		parse = UnformatStrict
	}
	c, err := parse(raw)
	if err != nil {
		s.log.Debug("rejected input", zap.String("input", raw), zap.Error(err))
		res.Status = StatusFormatError
		res.Err = err
		return res, nil
	}
	res.Canonical = c

	holes := c.Holes()
	if len(holes.Body) == 0 {
		err := s.resolveKnown(&res, holes, yield)
		return res, err
	}

	start := time.Now()
	s.log.Debug("searching body holes",
		zap.String("cpf", string(c)),
		zap.Int("holes", len(holes.Body)),
		zap.Int("workers", s.workers))

	res.Found, err = newSearch(c, holes.Body).run(ctx, s.workers, yield)
	if err != nil {
		return res, err
	}

	s.log.Debug("search finished",
		zap.String("cpf", string(c)),
		zap.Int("matches", res.Found),
		zap.Duration("elapsed", time.Since(start)))

	if res.Found == 0 {
		res.Status = StatusNotFound
		return res, nil
	}
	res.Status = StatusCompleted
	return res, nil
}

// resolveKnown handles a CPF whose body has no placeholders.
func (s *Solver) resolveKnown(res *Result, holes HoleSet, yield func(string) error) error {
	body := res.Canonical.Body()
	if isRepeated(body) {
		res.Status = StatusInvalid
		return nil
	}
	// The body is all digits here, so the error is always nil.
	v, _ := ComputeCheckDigits(body)
	switch {
	case !Matches(res.Canonical.Verifiers(), v):
		res.Status = StatusInvalid
	case holes.Total() == 0:
		res.Status = StatusValid
	default:
		res.Status = StatusCompleted
		res.Found = 1
		return yield(Format(body, v))
	}
	return nil
}
