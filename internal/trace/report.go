package trace

import (
	"fmt"
	"strings"

	"purls/internal/model"
)

// ChainLabel names position i of a chain of length n: Start, Step i or Final.
func ChainLabel(i, n int) string {
	switch {
	case i == 0:
		return "Start"
	case i == n-1:
		return "Final"
	default:
		return fmt.Sprintf("Step %d", i)
	}
}

// Summary returns the closing remarks for a report, most important first.
func Summary(r *model.Report) []string {
	var lines []string
	if n := len(r.Lost); n > 0 {
		lines = append(lines, fmt.Sprintf(
			"Warning: %d parameter(s) were lost during redirects. This could affect your tracking and analytics.", n))
	} else if len(r.Preserved) > 0 {
		lines = append(lines, "All your parameters were preserved through the redirect chain.")
	}
	if n := r.ChangedCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("%d preserved parameter(s) arrived with a different value.", n))
	}
	if r.RedirectCount == 0 {
		lines = append(lines, "No redirects detected. The URL goes directly to its destination.")
	}
	return lines
}

// GenerateReport renders a report as plain text. verbose adds per-hop status codes.
func GenerateReport(r *model.Report, verbose bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("URL: %s\n\n", r.URL))

	sb.WriteString(fmt.Sprintf("Redirect Chain (%d steps)", len(r.RedirectChain)))
	if r.RedirectCount == 0 {
		sb.WriteString(" - No redirects detected")
	}
	sb.WriteString("\n")
	for i, u := range r.RedirectChain {
		icon := model.IconHop
		if i == 0 {
			icon = model.IconStart
		} else if i == len(r.RedirectChain)-1 {
			icon = model.IconFinal
		}
		sb.WriteString(fmt.Sprintf("  %s %-8s %s\n", icon, ChainLabel(i, len(r.RedirectChain)), u))
	}

	if verbose && len(r.Hops) > 0 {
		sb.WriteString("\nHops:\n")
		for i, h := range r.Hops {
			switch {
			case h.Error != "" && h.StatusCode == 0:
				sb.WriteString(fmt.Sprintf("  %2d. %s -> error: %s\n", i+1, h.URL, h.Error))
			case h.Location != "":
				sb.WriteString(fmt.Sprintf("  %2d. %s -> %d (Location: %s)\n", i+1, h.URL, h.StatusCode, h.Location))
			default:
				sb.WriteString(fmt.Sprintf("  %2d. %s -> %d\n", i+1, h.URL, h.StatusCode))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("\nPreserved (%d):\n", len(r.Preserved)))
	for _, p := range r.Preserved {
		icon := model.IconPreserved
		if p.Changed {
			icon = model.IconChanged
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", icon, p))
	}

	sb.WriteString(fmt.Sprintf("\nLost (%d):\n", len(r.Lost)))
	if len(r.Lost) == 0 {
		sb.WriteString("  No parameters lost\n")
	}
	for _, p := range r.Lost {
		sb.WriteString(fmt.Sprintf("  %s %s\n", model.IconLost, p))
	}

	sb.WriteString(fmt.Sprintf("\nAdded (%d):\n", len(r.Added)))
	if len(r.Added) == 0 {
		sb.WriteString("  No parameters added\n")
	}
	for _, p := range r.Added {
		sb.WriteString(fmt.Sprintf("  %s %s\n", model.IconAdded, p))
	}

	if summary := Summary(r); len(summary) > 0 {
		sb.WriteString("\n")
		for _, line := range summary {
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

// GenerateBatchReport renders reports for several inputs; a nil report means
// the input composed to an empty URL.
func GenerateBatchReport(inputs []string, reports []*model.Report, verbose bool) string {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
		}
		if r == nil {
			sb.WriteString(fmt.Sprintf("%q: nothing to check\n", inputs[i]))
			continue
		}
		sb.WriteString(GenerateReport(r, verbose))
	}
	return sb.String()
}
