// Package report renders solver results for the terminal or for scripts.
//
// Reporters drive the solver themselves so completed CPFs are written as
// they are found; a search with every digit open never sits in memory.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"cpfsolver/internal/cpf"
)

// Solver is the part of *cpf.Solver a reporter needs.
type Solver interface {
	Each(ctx context.Context, raw string, yield func(line string) error) (cpf.Result, error)
}

// Reporter is the interface every output format implements.
type Reporter interface {
	// Name returns the format identifier used by --format (e.g. "text").
	Name() string

	// Report solves input with s and writes the outcome to w, streaming
	// completed CPFs as s produces them.
	Report(ctx context.Context, w io.Writer, s Solver, input string) error

	// Separate writes what goes between two consecutive reports.
	Separate(w io.Writer) error
}

var reporters = map[string]Reporter{
	"text": Text{},
	"yaml": YAML{},
}

// Lookup returns the reporter registered under name.
func Lookup(name string) (Reporter, error) {
	r, ok := reporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (available: %v)", name, Names())
	}
	return r, nil
}

// Names lists the registered formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(reporters))
	for n := range reporters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Text prints one line per completed CPF, or the outcome message. Reports
// are separated by a blank line.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Report(ctx context.Context, w io.Writer, s Solver, input string) error {
	res, err := s.Each(ctx, input, func(c string) error {
		_, err := fmt.Fprintln(w, c)
		return err
	})
	if err != nil {
		return err
	}
	if res.Status == cpf.StatusCompleted {
		return nil
	}
	for _, line := range res.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (Text) Separate(w io.Writer) error {
	_, err := io.WriteString(w, "\n")
	return err
}

// Document is the YAML shape of one result.
type Document struct {
	Input      string   `yaml:"input"`
	Candidates []string `yaml:"candidates,omitempty"`
	Canonical  string   `yaml:"canonical,omitempty"`
	Status     string   `yaml:"status"`
	Message    string   `yaml:"message,omitempty"`
}

// documentTail holds the fields only known once solving is done.
type documentTail struct {
	Canonical string `yaml:"canonical,omitempty"`
	Status    string `yaml:"status"`
	Message   string `yaml:"message,omitempty"`
}

// YAML writes each result as its own Document. Candidates are written as
// list items while the search runs; the status fields follow them.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Report(ctx context.Context, w io.Writer, s Solver, input string) error {
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	if err := writeYAML(w, struct {
		Input string `yaml:"input"`
	}{input}); err != nil {
		return err
	}

	started := false
	res, err := s.Each(ctx, input, func(c string) error {
		if !started {
			started = true
			if _, err := io.WriteString(w, "candidates:\n"); err != nil {
				return err
			}
		}
		// Formatted CPFs are digits, dots and a dash: plain YAML scalars.
		_, err := fmt.Fprintf(w, "  - %s\n", c)
		return err
	})
	if err != nil {
		return err
	}

	tail := documentTail{
		Canonical: string(res.Canonical),
		Status:    res.Status.String(),
	}
	if res.Status != cpf.StatusCompleted {
		if lines := res.Lines(); len(lines) == 1 {
			tail.Message = lines[0]
		}
	}
	return writeYAML(w, tail)
}

// Separate writes nothing: every document opens with its own "---".
func (YAML) Separate(io.Writer) error { return nil }

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = w.Write(out)
	return err
}
