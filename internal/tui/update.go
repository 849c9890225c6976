package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"purls/internal/log"
	"purls/internal/model"
	"purls/internal/params"
)

// MsgCheckDone carries the outcome of a redirect check.
// Report is nil when the edited URL composed to nothing.
type MsgCheckDone struct {
	Report *model.Report
}

// MsgCopied reports the outcome of a clipboard write.
type MsgCopied struct {
	Err error
}

// checkTimeout bounds a whole check started from the TUI.
const checkTimeout = 2 * time.Minute

func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.URLInput.Width = msg.Width - len(m.URLInput.Prompt) - 2
		m.ResultsViewport.Width = msg.Width - 4
		m.ResultsViewport.Height = msg.Height - 8 // title, borders, footer
		return m, nil

	case MsgCheckDone:
		m.Loading = false
		m.Report = msg.Report
		if msg.Report == nil {
			m.Status = "Nothing to check: the URL is empty."
			return m, nil
		}
		m.ShowResults = true
		m.ResultsViewport.SetContent(renderReport(msg.Report))
		m.ResultsViewport.GotoTop()
		return m, nil

	case MsgCopied:
		if msg.Err != nil {
			m.Err = msg.Err
			m.Status = "Copy failed: " + msg.Err.Error()
		} else {
			m.Status = "Copied to clipboard."
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.Status = ""

		switch {
		case m.ShowHelp:
			return m.updateHelp(msg)
		case m.ShowResults:
			return m.updateResults(msg)
		}

		switch m.Focus {
		case FocusURL:
			return m.updateURL(msg)
		case FocusEdit:
			return m.updateEdit(msg)
		default:
			return m.updateParams(msg)
		}
	}

	return m, cmd
}

func (m AppModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.ShowHelp = false
	}
	return m, nil
}

func (m AppModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.ShowResults = false
		return m, nil
	case "r":
		return m.startCheck()
	case "c":
		return m.copyURL()
	}
	var cmd tea.Cmd
	m.ResultsViewport, cmd = m.ResultsViewport.Update(msg)
	return m, cmd
}

func (m AppModel) updateURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab, tea.KeyEsc, tea.KeyDown:
		m.focusParams()
		return m, nil
	}

	before := m.URLInput.Value()
	var cmd tea.Cmd
	m.URLInput, cmd = m.URLInput.Update(msg)
	if m.URLInput.Value() != before {
		m.decompose()
	}
	return m, cmd
}

func (m AppModel) updateParams(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "/":
		m.Focus = FocusURL
		m.URLInput.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		} else {
			m.Focus = FocusURL
			m.URLInput.Focus()
			return m, textinput.Blink
		}
	case "down", "j":
		if m.SelectedIdx < len(m.Params)-1 {
			m.SelectedIdx++
		}
	case "enter", "e":
		if len(m.Params) > 0 {
			return m.startEdit(EditKey)
		}
	case "a":
		m.setParams(params.Add(m.Params, model.QueryParam("", "")))
		m.SelectedIdx = m.lastQueryIndex()
		return m.startEdit(EditKey)
	case "u":
		m.setParams(params.AddUTM(m.Params))
	case "#":
		if params.HasFragment(m.Params) {
			m.Status = "The URL already has a fragment."
			return m, nil
		}
		m.setParams(params.AddFragment(m.Params))
		m.SelectedIdx = len(m.Params) - 1
		return m.startEdit(EditValue)
	case "x", "delete":
		if len(m.Params) > 0 {
			m.setParams(params.Remove(m.Params, m.SelectedIdx))
		}
	case "c":
		return m.copyURL()
	case "r":
		return m.startCheck()
	case "?":
		m.ShowHelp = true
	case "v":
		if m.Report != nil {
			m.ShowResults = true
		}
	}
	return m, nil
}

func (m AppModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focusParams()
		return m, nil
	case tea.KeyEnter, tea.KeyTab:
		p := m.Params[m.SelectedIdx]
		if m.Editing == EditKey && !p.IsFragment() {
			m.setParams(params.Update(m.Params, m.SelectedIdx, m.EditInput.Value(), p.Value))
			return m.startEdit(EditValue)
		}
		m.setParams(params.Update(m.Params, m.SelectedIdx, p.Key, m.EditInput.Value()))
		m.focusParams()
		return m, nil
	}

	var cmd tea.Cmd
	m.EditInput, cmd = m.EditInput.Update(msg)
	return m, cmd
}

// startEdit opens the editor on field of the selected parameter.
// Fragments only have a value.
func (m AppModel) startEdit(field EditField) (tea.Model, tea.Cmd) {
	p := m.Params[m.SelectedIdx]
	if p.IsFragment() {
		field = EditValue
	}
	m.Focus = FocusEdit
	m.Editing = field
	m.URLInput.Blur()

	switch field {
	case EditKey:
		m.EditInput.Prompt = "Key: "
		m.EditInput.Placeholder = "name"
		m.EditInput.SetValue(p.Key)
	default:
		m.EditInput.Prompt = "Value: "
		m.EditInput.Placeholder = "value"
		if p.IsFragment() {
			m.EditInput.Prompt = "Fragment: #"
			m.EditInput.Placeholder = "section"
		}
		m.EditInput.SetValue(p.Value)
	}
	m.EditInput.CursorEnd()
	m.EditInput.Focus()
	return m, textinput.Blink
}

func (m *AppModel) focusParams() {
	m.Focus = FocusParams
	m.URLInput.Blur()
	m.EditInput.Blur()
	m.clampSelection()
}

func (m AppModel) lastQueryIndex() int {
	idx := 0
	for i, p := range m.Params {
		if !p.IsFragment() {
			idx = i
		}
	}
	return idx
}

func (m AppModel) startCheck() (tea.Model, tea.Cmd) {
	if m.Loading {
		return m, nil
	}
	if m.ComposedURL() == "" {
		m.Status = "Nothing to check: the URL is empty."
		return m, nil
	}
	m.Loading = true
	m.ShowResults = false
	return m, CheckCmd(m)
}

// CheckCmd checks the edited URL in the background.
func CheckCmd(m AppModel) tea.Cmd {
	d := m.Decomposed()
	checker := m.checker
	maxRedirects := m.maxRedirects
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		report, ok := checker.Check(ctx, d, maxRedirects)
		if !ok {
			return MsgCheckDone{}
		}
		return MsgCheckDone{Report: report}
	}
}

func (m AppModel) copyURL() (tea.Model, tea.Cmd) {
	text := m.ComposedURL()
	if text == "" {
		m.Status = "Nothing to copy."
		return m, nil
	}
	copyText := m.copyText
	return m, func() tea.Msg {
		if err := copyText(text); err != nil {
			log.Warn("clipboard write failed: %v", err)
			return MsgCopied{Err: err}
		}
		return MsgCopied{}
	}
}
