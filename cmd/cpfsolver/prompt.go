package main

// prompt.go: reads the single CPF line when no arguments are given.
//
// On a terminal the prompt is a bubbletea text input; piped or redirected
// stdin is read as a plain line so the tool stays scriptable.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const promptText = "Insira o CPF a completar (use _ ou espaço):"

// errInterrupted means the user left the prompt without entering a CPF.
var errInterrupted = errors.New("prompt interrupted")

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

func readInput(ctx context.Context, stdin io.Reader, stdout io.Writer) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptTerminal(ctx, f, stdout)
	}
	return promptLine(ctx, stdin, stdout)
}

// promptLine prints the prompt and reads one line. EOF before any input
// counts as an interruption.
func promptLine(ctx context.Context, stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprintf(stdout, "%s\n> ", promptText)

	type lineResult struct {
		line string
		err  error
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		ch <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", errInterrupted
	case r := <-ch:
		switch {
		case r.err == nil, errors.Is(r.err, io.EOF) && r.line != "":
		case errors.Is(r.err, io.EOF):
			return "", errInterrupted
		default:
			return "", r.err
		}
		// Only the line terminator is dropped: spaces are placeholders.
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// ---------------------------------------------------------------------------
// TUI prompt
// ---------------------------------------------------------------------------

// promptModel is a bubbletea model asking for one CPF.
type promptModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "___.___.___-__"
	ti.CharLimit = 64
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render(promptText),
		m.input.View(),
		hintStyle.Render("enter: confirmar • esc: sair"))
}

// promptTerminal runs the TUI and returns the entered line.
func promptTerminal(ctx context.Context, in *os.File, stdout io.Writer) (string, error) {
	p := tea.NewProgram(newPromptModel(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(stdout))
	result, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return "", errInterrupted
		}
		return "", err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return "", errInterrupted
	}
	return final.input.Value(), nil
}
