package send

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/styles"
)

// Field is one row of the send form
type Field struct {
	Label   string
	View    string
	Focused bool
	Note    string
	Warn    bool
}

// Bucket is a fee bucket the user can pick
type Bucket struct {
	Key   string
	Label string
	Fee   string
	ETA   string
}

// Estimate is the estimate line under the form
type Estimate struct {
	Ready   bool
	Err     string
	Fees    string
	Final   string
	Stages  int
	Utxos   int
	Pending bool
}

// Form is everything the send panel shows
type Form struct {
	Title      string
	From       string
	Available  string
	Fields     []Field
	Buckets    []Bucket
	Estimate   Estimate
	Secrets    []Field
	CanSend    bool
	Sending    bool
	Processing bool
	Spinner    string
}

// Nav returns the navigation bar for the send form
func Nav(width int, sending bool) string {
	var left string
	if sending {
		left = strings.Join([]string{
			styles.Key("Tab") + " next",
			styles.Key("Enter") + " submit",
			styles.Key("Ctrl+U") + " clear",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("Tab") + " next",
			styles.Key("F1-F3") + " fee",
			styles.Key("Enter") + " send",
			styles.Key("Esc") + " cancel",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the send panel
func Render(width int, f Form) string {
	containerWidth := helpers.Min(80, helpers.Max(20, width-4))

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Width(containerWidth)

	boxStyle := lipgloss.NewStyle().
		Width(containerWidth-4).
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder)

	boxFocusedStyle := boxStyle.Copy().
		BorderForeground(styles.CAccent).
		BorderStyle(lipgloss.ThickBorder())

	parts := []string{titleStyle.Render(f.Title)}

	from := styles.MutedStyle.Render("From ") + lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(f.From)
	if f.Available != "" {
		from += "   " + styles.MutedStyle.Render("Available: "+f.Available)
	}
	parts = append(parts, from, "")

	for _, field := range f.Fields {
		parts = append(parts, renderField(field, boxStyle, boxFocusedStyle))
	}

	if len(f.Buckets) > 0 {
		parts = append(parts, "", renderBuckets(f.Buckets))
	}

	parts = append(parts, "", renderEstimate(f.Estimate, f.Spinner))

	if f.Sending || f.Processing {
		parts = append(parts, "")
		for _, s := range f.Secrets {
			parts = append(parts, renderField(s, boxStyle, boxFocusedStyle))
		}
	}

	parts = append(parts, "", renderButton(f, containerWidth))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderField(field Field, normal, focused lipgloss.Style) string {
	label := styles.MutedStyle.Render(field.Label)
	content := label + "\n" + field.View
	if field.Note != "" {
		noteStyle := styles.MutedStyle
		if field.Warn {
			noteStyle = styles.WarnStyle
		}
		content += "\n" + noteStyle.Render(field.Note)
	}
	if field.Focused {
		return focused.Render(content)
	}
	return normal.Render(content)
}

func renderBuckets(buckets []Bucket) string {
	var cols []string
	for _, b := range buckets {
		card := styles.Key(b.Key) + " " + lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(b.Label) + "\n" +
			styles.MutedStyle.Render(b.Fee) + "\n" +
			styles.MutedStyle.Render(b.ETA)
		cols = append(cols, lipgloss.NewStyle().Width(24).Render(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderEstimate(e Estimate, spinner string) string {
	switch {
	case e.Err != "":
		return styles.ErrorStyle.Render("⚠ " + e.Err)
	case e.Ready:
		lines := []string{
			fmt.Sprintf("%s %s", styles.LabelStyle.Render("Fees"), e.Fees),
			fmt.Sprintf("%s %s", styles.LabelStyle.Render("Total"), e.Final),
			styles.MutedStyle.Render(fmt.Sprintf("%d UTXOs, %d transaction(s)", e.Utxos, e.Stages)),
		}
		out := strings.Join(lines, "\n")
		if e.Pending {
			out += "\n" + spinner + styles.MutedStyle.Render(" updating…")
		}
		return out
	case e.Pending:
		return spinner + styles.MutedStyle.Render(" estimating…")
	default:
		return styles.MutedStyle.Render("Enter an amount to estimate fees.")
	}
}

func renderButton(f Form, width int) string {
	buttonStyle := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 1).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Foreground(styles.CMuted)

	switch {
	case f.Processing:
		return buttonStyle.Render(f.Spinner + " Sending…")
	case f.Sending:
		return buttonStyle.Copy().
			BorderForeground(styles.CAccent).
			BorderStyle(lipgloss.ThickBorder()).
			Background(styles.CAccent).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Render("Submit")
	case f.CanSend:
		return buttonStyle.Copy().
			BorderForeground(styles.CAccent).
			Foreground(styles.CText).
			Bold(true).
			Render("Send")
	default:
		return buttonStyle.Render("Send")
	}
}
