package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbctxt/readycheck/internal/model"
)

// RenderReport renders a full readiness report for the terminal.
func RenderReport(report *model.Report) string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s — Phase %s (%s)",
		titleCase(report.Class), titleCase(report.Spec), report.Phase, report.Role)
	b.WriteString(FormatTitle(header))
	b.WriteString("\n\n")

	b.WriteString(renderVerdict(report.Thresholds))
	b.WriteString("\n\n")

	if len(report.Lines) > 0 {
		b.WriteString(renderLines(report.Lines))
		b.WriteString("\n")
	}

	if len(report.Slots) > 0 {
		b.WriteString(renderSlots(report.Slots))
		b.WriteString("\n")
	}

	if len(report.Thresholds.Passed)+len(report.Thresholds.Failed) > 0 {
		b.WriteString(renderThresholds(report.Thresholds))
		b.WriteString("\n")
	}

	if len(report.Comparison) > 0 {
		b.WriteString(renderComparison(report.Comparison))
		b.WriteString("\n")
	}

	b.WriteString(BoldStyle.Render("Overall gear standing: "))
	b.WriteString(gearStatusStyle(report.GearStatus).Render(string(report.GearStatus)))
	b.WriteString("\n")

	return b.String()
}

func renderVerdict(t model.ThresholdResult) string {
	label := fmt.Sprintf(" %s: %s ", t.Label, t.Verdict)
	switch t.Verdict {
	case model.VerdictReady:
		return SuccessStyle.Bold(true).Render(label)
	case model.VerdictAlmostReady:
		return WarningStyle.Bold(true).Render(label)
	default:
		return ErrorStyle.Bold(true).Render(label)
	}
}

func renderLines(lines []model.LineResolution) string {
	var rows []string
	for _, l := range lines {
		switch {
		case l.Found && l.Remote:
			rows = append(rows, FormatSuccess(fmt.Sprintf("%s (found via search, id %d)", l.Input, l.ItemID)))
		case l.Found:
			rows = append(rows, FormatSuccess(fmt.Sprintf("%s (id %d)", l.Input, l.ItemID)))
		default:
			rows = append(rows, FormatError(l.Input+" (not found)"))
		}
	}
	return RenderBox("Gear List", strings.Join(rows, "\n"))
}

func renderSlots(slots []model.SlotMatchResult) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(12).Render("Slot"),
		TableHeaderStyle.Width(10).Render("Status"),
		TableHeaderStyle.Width(36).Render("Your Item"),
		TableHeaderStyle.Width(40).Render("Best in Slot"),
	)

	rows := []string{header}
	for _, s := range slots {
		userItem := s.UserItem
		if userItem == "" {
			userItem = SubtleStyle.Render("—")
		}
		bis := s.BisItem
		if s.BisSource != "" {
			bis += SubtleStyle.Render(" (" + s.BisSource + ")")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(12).Render(s.DisplaySlot),
			TableCellStyle.Width(10).Render(matchStatusStyle(s.Status).Render(string(s.Status))),
			TableCellStyle.Width(36).Render(userItem),
			TableCellStyle.Width(40).Render(bis),
		))
	}
	return RenderBox("Slot Matches", strings.Join(rows, "\n"))
}

func renderThresholds(t model.ThresholdResult) string {
	var rows []string
	for _, e := range t.Passed {
		rows = append(rows, FormatSuccess(fmt.Sprintf("%-14s %d / %d", e.Label, e.Current, e.Required)))
	}
	for _, e := range t.Failed {
		rows = append(rows, FormatError(fmt.Sprintf("%-14s %d / %d (%d)", e.Label, e.Current, e.Required, e.Diff)))
	}
	return RenderBox(t.Label+" Requirements", strings.Join(rows, "\n"))
}

func renderComparison(rows []model.StatComparison) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(18).Render("Stat"),
		TableHeaderStyle.Width(8).Render("You"),
		TableHeaderStyle.Width(8).Render("BiS"),
		TableHeaderStyle.Width(10).Render("Status"),
	)

	out := []string{header}
	for _, r := range rows {
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(18).Render(r.Label),
			TableCellStyle.Width(8).Render(fmt.Sprintf("%d", r.User)),
			TableCellStyle.Width(8).Render(fmt.Sprintf("%d", r.Bis)),
			TableCellStyle.Width(10).Render(statStatusStyle(r.Status).Render(string(r.Status))),
		))
	}
	return RenderBox("Stats vs Best in Slot", strings.Join(out, "\n"))
}

// RenderBisList renders a best-in-slot table on its own, for the bis command.
func RenderBisList(class, spec, phaseName string, entries []model.BisEntry) string {
	if len(entries) == 0 {
		return FormatWarning("no reference data for this selection")
	}

	var rows []string
	for _, e := range entries {
		label := ""
		if e.Label != model.PriorityNone {
			label = " " + priorityStyle(e.Label).Render("("+string(e.Label)+")")
		}
		source := ""
		if e.Source != "" {
			source = SubtleStyle.Render("  " + e.Source)
		}
		rows = append(rows, fmt.Sprintf("%-12s %s%s%s",
			e.Slot, e.Item, label, source))
	}

	title := fmt.Sprintf("%s %s — %s", titleCase(class), titleCase(spec), phaseName)
	return RenderBox(title, strings.Join(rows, "\n"))
}

func matchStatusStyle(s model.MatchStatus) lipgloss.Style {
	switch s {
	case model.MatchBiS:
		return LegendaryStyle
	case model.MatchGood:
		return SuccessStyle
	case model.MatchOK:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

func statStatusStyle(s model.StatStatus) lipgloss.Style {
	switch s {
	case model.StatStatusBiS:
		return LegendaryStyle
	case model.StatStatusGood:
		return SuccessStyle
	case model.StatStatusPrepared:
		return WarningStyle
	case model.StatStatusLow:
		return ErrorStyle
	default:
		return SubtleStyle
	}
}

func gearStatusStyle(s model.GearStatus) lipgloss.Style {
	switch s {
	case model.GearStatusBiS:
		return LegendaryStyle
	case model.GearStatusGood:
		return SuccessStyle
	case model.GearStatusPrepared:
		return WarningStyle
	case model.GearStatusUndergeared:
		return ErrorStyle
	default:
		return SubtleStyle
	}
}

func priorityStyle(l model.PriorityLabel) lipgloss.Style {
	switch l {
	case model.PriorityBest:
		return LegendaryStyle
	case model.PriorityRecommended, model.PriorityGood:
		return SuccessStyle
	case model.PriorityOption, model.PriorityAlternative:
		return WarningStyle
	default:
		return SubtleStyle
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
