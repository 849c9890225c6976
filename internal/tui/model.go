package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"purls/internal/model"
	"purls/internal/params"
	"purls/internal/trace"
)

// Focus is the part of the screen receiving key presses.
type Focus int

const (
	FocusURL    Focus = iota // URL text input
	FocusParams              // parameter list navigation
	FocusEdit                // editing the selected parameter
)

// EditField is the half of a parameter being edited.
type EditField int

const (
	EditKey EditField = iota
	EditValue
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Base    string
	Params  []model.Param
	Report  *model.Report
	Loading bool
	Err     error

	// UI State
	Focus       Focus
	SelectedIdx int
	Editing     EditField
	WindowSize  tea.WindowSizeMsg
	Status      string // one-line feedback shown above the footer

	// View Modes
	ShowResults bool
	ShowHelp    bool

	// Components
	URLInput        textinput.Model
	EditInput       textinput.Model
	ResultsViewport viewport.Model

	checker      *trace.Checker
	maxRedirects int
	copyText     func(string) error
}

// InitialModel returns the initial state with rawURL already decomposed.
func InitialModel(checker *trace.Checker, rawURL string, maxRedirects int) AppModel {
	ti := textinput.New()
	ti.Placeholder = "https://example.com/page?utm_source=newsletter#top"
	ti.Prompt = "URL: "
	ti.CharLimit = 4096
	ti.Focus()

	ei := textinput.New()
	ei.CharLimit = 1024

	m := AppModel{
		URLInput:        ti,
		EditInput:       ei,
		ResultsViewport: viewport.New(80, 20),
		checker:         checker,
		maxRedirects:    maxRedirects,
		copyText:        clipboard.WriteAll,
	}
	m.setURL(rawURL)
	return m
}

// setURL replaces the editor contents with the decomposition of raw.
func (m *AppModel) setURL(raw string) {
	m.URLInput.SetValue(raw)
	m.URLInput.CursorEnd()
	m.decompose()
}

// decompose rebuilds Base and Params from the URL input.
func (m *AppModel) decompose() {
	d := params.Decompose(m.URLInput.Value())
	m.Base = d.Base
	m.Params = params.Sorted(d.Params)
	m.clampSelection()
}

// setParams stores edited params and rewrites the URL input to match.
func (m *AppModel) setParams(ps []model.Param) {
	m.Params = ps
	m.URLInput.SetValue(m.ComposedURL())
	m.URLInput.CursorEnd()
	m.clampSelection()
}

// Decomposed is the editor contents as a DecomposedURL.
func (m AppModel) Decomposed() model.DecomposedURL {
	return model.DecomposedURL{Base: m.Base, Params: m.Params}
}

// ComposedURL is the URL the editor currently describes.
func (m AppModel) ComposedURL() string {
	return params.ComposeURL(m.Decomposed())
}

func (m *AppModel) clampSelection() {
	if m.SelectedIdx >= len(m.Params) {
		m.SelectedIdx = len(m.Params) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
}
