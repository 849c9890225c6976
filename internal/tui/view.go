package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"purls/internal/model"
	"purls/internal/params"
	"purls/internal/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	separatorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81")) // Sky Blue/Cyan

	preservedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lostStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

const helpText = `purls - URL parameter editor

URL input
  type        edit the URL; parameters update live
  enter/tab   move to the parameter list

Parameter list
  up/down     select (up from the top returns to the URL)
  enter, e    edit key, then value
  a           add a parameter
  u           add missing UTM parameters
  #           add the fragment
  x, delete   remove the selected parameter
  c           copy the composed URL
  r           check redirects
  v           show the last check
  ?           this help
  q, ctrl+c   quit

Results
  up/down     scroll
  r           check again
  esc, q      back to the editor`

func (m AppModel) View() string {
	width := m.WindowSize.Width
	if width < 40 {
		width = 80
	}
	innerWidth := width - 4

	if m.ShowHelp {
		return m.renderBox("Help", helpText, innerWidth)
	}
	if m.ShowResults && m.Report != nil {
		return m.renderResults(innerWidth)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("purls " + model.Version))
	b.WriteString("\n\n")

	urlBorder := borderColor
	if m.Focus == FocusURL {
		urlBorder = activeColor
	}
	b.WriteString(lipgloss.NewStyle().
		Width(innerWidth).
		Border(lipgloss.NormalBorder()).
		BorderForeground(urlBorder).
		Render(m.URLInput.View()))
	b.WriteString("\n")

	var list strings.Builder
	list.WriteString(headerStyle.Render("Base"))
	list.WriteString("\n")
	if m.Base == "" {
		list.WriteString(dimStyle.Render("  (empty)"))
	} else {
		list.WriteString("  " + m.Base)
	}
	list.WriteString("\n\n")
	d := m.Decomposed()
	header := fmt.Sprintf("Parameters (%d", len(d.QueryParams()))
	if frag, ok := d.Fragment(); ok {
		header += ", #" + frag
	}
	list.WriteString(headerStyle.Render(header + ")"))
	list.WriteString("\n")
	if len(m.Params) == 0 {
		list.WriteString(dimStyle.Render("  none. press 'a' to add one"))
		list.WriteString("\n")
	}
	for i, p := range m.Params {
		list.WriteString(m.renderParam(i, p, innerWidth))
		list.WriteString("\n")
	}

	listBorder := borderColor
	if m.Focus != FocusURL {
		listBorder = activeColor
	}
	b.WriteString(lipgloss.NewStyle().
		Width(innerWidth).
		Border(lipgloss.NormalBorder()).
		BorderForeground(listBorder).
		Render(strings.TrimSuffix(list.String(), "\n")))

	b.WriteString("\n")
	if m.Focus == FocusEdit {
		b.WriteString(m.EditInput.View())
		b.WriteString("\n")
	}
	if m.Loading {
		b.WriteString(statusStyle.Render("Checking redirects... please wait."))
		b.WriteString("\n")
	} else if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m AppModel) renderParam(i int, p model.Param, width int) string {
	sep := separatorStyle.Render(params.Separator(m.Params, i))

	var line string
	switch {
	case p.IsFragment():
		line = fmt.Sprintf("%s %s", model.IconFragment, p.Value)
	case p.Key == "":
		line = dimStyle.Render("(no key, omitted)") + " = " + p.Value
	default:
		line = fmt.Sprintf("%s = %s", p.Key, p.Value)
	}
	if len(line) > width-6 && width > 10 {
		line = line[:width-9] + "..."
	}

	if m.Focus != FocusURL && i == m.SelectedIdx {
		return " " + sep + " " + selectedStyle.Render(line)
	}
	return " " + sep + " " + normalStyle.Render(line)
}

func (m AppModel) footer() string {
	var help string
	switch m.Focus {
	case FocusURL:
		help = "URL: type to edit • enter/tab: Parameters • ctrl+c: Quit"
	case FocusEdit:
		help = "Editing: enter: Next/Save • esc: Cancel"
	default:
		help = "↑/↓: Select • enter: Edit • a: Add • u: UTM • #: Fragment • x: Remove • c: Copy • r: Check • ?: Help • q: Quit"
	}
	return dimStyle.Render(help)
}

func (m AppModel) renderResults(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Redirect check"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(m.ResultsViewport.View()))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status) + "\n")
	}
	b.WriteString(dimStyle.Render("↑/↓: Scroll • r: Check again • c: Copy URL • esc: Back"))
	return b.String()
}

func (m AppModel) renderBox(title, content string, width int) string {
	dialog := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(titleStyle.Render(title) + "\n\n" + content)

	if m.WindowSize.Width == 0 || m.WindowSize.Height == 0 {
		return dialog
	}
	return lipgloss.Place(m.WindowSize.Width, m.WindowSize.Height,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

// renderReport formats a report for the results viewport.
func renderReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Redirect Chain (%d redirects)", r.RedirectCount)))
	b.WriteString("\n")
	n := len(r.RedirectChain)
	for i, u := range r.RedirectChain {
		icon := model.IconHop
		if i == 0 {
			icon = model.IconStart
		} else if i == n-1 {
			icon = model.IconFinal
		}
		b.WriteString(fmt.Sprintf("  %s %-8s %s\n", icon, trace.ChainLabel(i, n), u))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Preserved (%d)", len(r.Preserved))))
	b.WriteString("\n")
	for _, p := range r.Preserved {
		if p.Changed {
			b.WriteString(changedStyle.Render(fmt.Sprintf("  %s %s", model.IconChanged, p)))
		} else {
			b.WriteString(preservedStyle.Render(fmt.Sprintf("  %s %s", model.IconPreserved, p)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Lost (%d)", len(r.Lost))))
	b.WriteString("\n")
	if len(r.Lost) == 0 {
		b.WriteString(dimStyle.Render("  No parameters lost") + "\n")
	}
	for _, p := range r.Lost {
		b.WriteString(lostStyle.Render(fmt.Sprintf("  %s %s", model.IconLost, p)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Added (%d)", len(r.Added))))
	b.WriteString("\n")
	if len(r.Added) == 0 {
		b.WriteString(dimStyle.Render("  No parameters added") + "\n")
	}
	for _, p := range r.Added {
		b.WriteString(addedStyle.Render(fmt.Sprintf("  %s %s", model.IconAdded, p)) + "\n")
	}

	if summary := trace.Summary(r); len(summary) > 0 {
		b.WriteString("\n")
		for _, line := range summary {
			b.WriteString(adviceStyle.Render(line) + "\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
