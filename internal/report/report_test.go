package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"cpfsolver/internal/cpf"
	"cpfsolver/internal/report"
)

func render(t *testing.T, r report.Reporter, inputs ...string) string {
	t.Helper()
	var sb strings.Builder
	s := cpf.NewSolver()
	for i, in := range inputs {
		if i > 0 {
			if err := r.Separate(&sb); err != nil {
				t.Fatalf("Separate: %v", err)
			}
		}
		if err := r.Report(context.Background(), &sb, s, in); err != nil {
			t.Fatalf("Report(%q): %v", in, err)
		}
	}
	return sb.String()
}

// recordingSolver yields fixed candidates and records what the writer held
// at each yield.
type recordingSolver struct {
	w      *strings.Builder
	lines  []string
	before []string
}

func (s *recordingSolver) Each(_ context.Context, raw string, yield func(string) error) (cpf.Result, error) {
	for _, l := range s.lines {
		s.before = append(s.before, s.w.String())
		if err := yield(l); err != nil {
			return cpf.Result{}, err
		}
	}
	return cpf.Result{Input: raw, Status: cpf.StatusCompleted, Found: len(s.lines)}, nil
}

func TestLookup(t *testing.T) {
	for _, name := range report.Names() {
		r, err := report.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if r.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, r.Name())
		}
	}
	if _, err := report.Lookup("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNamesSorted(t *testing.T) {
	if diff := cmp.Diff([]string{"text", "yaml"}, report.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

func TestTextReport(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"11144477735", cpf.MessageValid + "\n"},
		{"111444777__", "111.444.777-35\n"},
		{"52998224_99", cpf.MessageNotFound + "\n"},
		{"12a.456.789-00", cpf.MessageFormatError + "\n"},
	}
	for _, tc := range tests {
		if got := render(t, report.Text{}, tc.input); got != tc.want {
			t.Errorf("Report(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	out := render(t, report.Text{}, "11111111___")
	if n := strings.Count(out, "\n"); n != 9 {
		t.Errorf("Report(11111111___) wrote %d lines, want 9", n)
	}
}

func TestTextSeparatesReports(t *testing.T) {
	got := render(t, report.Text{}, "111444777__", "52998224_25", "11144477736")
	want := "111.444.777-35\n\n529.982.247-25\n\n" + cpf.MessageInvalid + "\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTextStreamsCandidates(t *testing.T) {
	var sb strings.Builder
	s := &recordingSolver{w: &sb, lines: []string{"111.444.777-35", "529.982.247-25"}}
	if err := (report.Text{}).Report(context.Background(), &sb, s, "x"); err != nil {
		t.Fatal(err)
	}
	// The first candidate is on the writer before the second is produced.
	if diff := cmp.Diff([]string{"", "111.444.777-35\n"}, s.before); diff != "" {
		t.Errorf("writer contents at each yield (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriteErrorStopsSearch(t *testing.T) {
	err := (report.Text{}).Report(context.Background(), failingWriter{}, cpf.NewSolver(), "1234567____")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error = %v, want the write error", err)
	}
}

// ---------------------------------------------------------------------------
// YAML
// ---------------------------------------------------------------------------

func TestYAMLReport(t *testing.T) {
	out := render(t, report.YAML{}, "111444777__", "11144477736", "12a.456.789-00", "52998224_99")

	dec := yaml.NewDecoder(strings.NewReader(out))
	var got []report.Document
	for {
		var d report.Document
		if err := dec.Decode(&d); err != nil {
			break
		}
		got = append(got, d)
	}

	want := []report.Document{
		{Input: "111444777__", Canonical: "111444777__", Status: "completed", Candidates: []string{"111.444.777-35"}},
		{Input: "11144477736", Canonical: "11144477736", Status: "invalid", Message: cpf.MessageInvalid},
		{Input: "12a.456.789-00", Status: "format_error", Message: cpf.MessageFormatError},
		{Input: "52998224_99", Canonical: "52998224_99", Status: "not_found", Message: cpf.MessageNotFound},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded documents (-want +got):\n%s", diff)
	}
}

func TestYAMLReportManyCandidates(t *testing.T) {
	out := render(t, report.YAML{}, "1234567____")
	var d report.Document
	if err := yaml.Unmarshal([]byte(strings.TrimPrefix(out, "---\n")), &d); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(d.Candidates) != 100 || d.Status != "completed" {
		t.Errorf("got %d candidates, status %q", len(d.Candidates), d.Status)
	}
	if len(d.Candidates) > 0 && !strings.HasPrefix(d.Candidates[0], "123.456.700-") {
		t.Errorf("first candidate = %q", d.Candidates[0])
	}
}
