package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kpgusev/calculator/internal/calc"
)

// operation shortcuts; '+' and '-' are handled separately since they are
// also operand signs
var opKeys = map[string]calc.Op{
	"*": calc.OpMul,
	"/": calc.OpDiv,
	"%": calc.OpMod,
	"^": calc.OpPow,
	"!": calc.OpFact,
	"f": calc.OpFact,
	"g": calc.OpGCD,
	"l": calc.OpLCM,
	"p": calc.OpPrime,
}

// CalculatorOptions configure the interactive calculator.
type CalculatorOptions struct {
	Context   context.Context
	Evaluator *calc.Evaluator
	// OnClearHistory runs after the in-memory history is cleared.
	OnClearHistory func() error
	// Clipboard receives OSC 52 copy sequences. Defaults to os.Stderr.
	Clipboard io.Writer
}

var errEmptyResult = errors.New("result is empty")

type evalDoneMsg struct {
	res calc.Result
	err error
}

// Calculator is the Bubble Tea model of the two-operand calculator.
type Calculator struct {
	opts    CalculatorOptions
	inputs  [2]textinput.Model
	focus   int
	spinner spinner.Model

	lastOp  calc.Op
	result  string
	notice  string
	errText string
	busy    bool
	width   int
	height  int
}

// NewCalculator returns the interactive calculator model.
func NewCalculator(opts CalculatorOptions) *Calculator {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Evaluator == nil {
		opts.Evaluator = &calc.Evaluator{History: calc.NewHistory(0)}
	}
	if opts.Evaluator.History == nil {
		opts.Evaluator.History = calc.NewHistory(0)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = os.Stderr
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &Calculator{opts: opts, spinner: sp, width: 80, height: 24}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-10s", calc.FieldName(i)+":")
		in.Placeholder = "0"
		in.CharLimit = 0
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m
}

func (m *Calculator) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Calculator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.height = msg.Height
		}
		return m, nil
	case evalDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.result = msg.res.Text
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocused(msg)
}

func (m *Calculator) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down", "shift+tab", "up":
		m.setFocus(1 - m.focus)
		return m, nil
	case "ctrl+l":
		m.clearInputs()
		return m, nil
	case "ctrl+x":
		return m, m.clearHistory()
	case "ctrl+y":
		if err := m.Copy(); errors.Is(err, errEmptyResult) {
			m.notice = "Result is empty."
		} else if err != nil {
			m.errText = err.Error()
		}
		return m, nil
	case "enter":
		op := m.lastOp
		if op == calc.OpInvalid {
			op = calc.OpAdd
		}
		return m, m.run(op)
	}
	if m.busy {
		return m, nil
	}

	if key == "+" || key == "-" {
		in := m.inputs[m.focus]
		if in.Position() == 0 && !strings.ContainsAny(in.Value(), "+-") {
			return m.updateFocused(msg)
		}
		if key == "+" {
			return m, m.run(calc.OpAdd)
		}
		return m, m.run(calc.OpSub)
	}
	if op, ok := opKeys[key]; ok {
		return m, m.run(op)
	}
	return m.updateFocused(msg)
}

func (m *Calculator) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Calculator) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Calculator) run(op calc.Op) tea.Cmd {
	if m.busy {
		return nil
	}
	m.lastOp = op
	m.errText = ""
	m.notice = ""

	raw := make([]string, op.Arity())
	for i := range raw {
		raw[i] = m.inputs[i].Value()
	}
	m.busy = true
	ctx, ev := m.opts.Context, m.opts.Evaluator
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := ev.Eval(ctx, op, raw...)
		return evalDoneMsg{res: res, err: err}
	})
}

func (m *Calculator) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(0)
	m.result = ""
	m.errText = ""
	m.notice = ""
	m.lastOp = calc.OpInvalid
}

func (m *Calculator) clearHistory() tea.Cmd {
	m.opts.Evaluator.History.Clear()
	m.notice = "History cleared."
	if m.opts.OnClearHistory == nil {
		return nil
	}
	if err := m.opts.OnClearHistory(); err != nil {
		m.errText = err.Error()
	}
	return nil
}

// Result returns the last successful result text.
func (m *Calculator) Result() string { return m.result }

// Copy copies the current result to the clipboard writer synchronously.
func (m *Calculator) Copy() error {
	text := strings.TrimSpace(m.result)
	if text == "" {
		return errEmptyResult
	}
	_, err := osc52.New(text).WriteTo(m.opts.Clipboard)
	if err == nil {
		m.notice = "Copied to clipboard."
	}
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorBox    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Foreground(lipgloss.Color("1")).
			Padding(0, 1)
)

func (m *Calculator) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Big integer calculator"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := "-"
	if m.lastOp != calc.OpInvalid {
		label = m.lastOp.Label()
	}
	b.WriteString(labelStyle.Render("Operation: " + label))
	if m.busy {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	width := max(m.width-4, 20)
	b.WriteString("Result:    ")
	b.WriteString(resultStyle.Render(wrap(m.result, width-11)))
	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(errorBox.Render("Error: " + m.errText))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n")
	entries := m.opts.Evaluator.History.Entries()
	rows := max(m.height-16, 3)
	for i, e := range entries {
		if i == rows {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  … %d more", len(entries)-rows)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  ")
		b.WriteString(truncate(e.Line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("+ - * / % ^ ! gcd:g lcm:l prime:p  enter repeat  tab switch  ctrl+l clear  ctrl+x clear history  ctrl+y copy  esc quit"))
	b.WriteString("\n")
	return b.String()
}

// wrap breaks long results into lines of at most width cells.
func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\n           ")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
