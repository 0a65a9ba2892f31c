package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/linker"
	"github.com/epixode/epic-linker/view"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	app    *linker.App
	bound  *view.Bound
	cancel context.CancelFunc
	input  textinput.Model
	frame  string
	err    error
}

// frameMsg carries a re-rendered frame from the mounted view.
type frameMsg string

func newInteractiveModel() (*interactiveModel, error) {
	app, err := buildApp()
	if err != nil {
		return nil, err
	}

	v, err := app.Scope.Get("counterView")
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 6
	input.Width = 10
	input.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	app.Start(ctx)

	return &interactiveModel{
		app:    app,
		bound:  v.(*view.Bound),
		cancel: cancel,
		input:  input,
	}, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	m.frame = m.bound.Render(m.app.Store.GetState())
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "+", "up":
			return m, m.dispatch(epic.Action{Type: actionInc})
		case "-", "down":
			return m, m.dispatch(epic.Action{Type: actionDec})
		case "enter":
			n, err := strconv.Atoi(m.input.Value())
			if err != nil {
				m.err = fmt.Errorf("not a number: %q", m.input.Value())
				return m, nil
			}
			m.err = nil
			m.input.SetValue("")
			return m, m.dispatch(epic.Action{Type: actionAdd, Payload: n})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch sends the action and reports the re-rendered frame as a message.
func (m *interactiveModel) dispatch(act epic.Action) tea.Cmd {
	return func() tea.Msg {
		m.app.Store.Dispatch(act)
		return frameMsg(m.bound.Render(m.app.Store.GetState()))
	}
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render(m.bound.DisplayName()) + "\n\n"
	s += countStyle.Render(m.frame) + "\n\n"
	s += "add: " + m.input.View() + "\n"
	if m.err != nil {
		s += errorStyle.Render(m.err.Error()) + "\n"
	}
	s += helpStyle.Render("+/- adjust · enter add amount · q quit")
	return s
}

func runInteractive() error {
	m, err := newInteractiveModel()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
