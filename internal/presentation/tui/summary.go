package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/seqline/pkg/domain"
)

// Summary describes a layout as a markdown document: one row per participant and a count
// of messages per kind.
func Summary(layout *domain.Layout) string {
	var sb strings.Builder
	title := layout.Name
	if title == "" {
		title = "(unnamed)"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d participants, %d messages, height %d.\n\n",
		len(layout.Participants), len(layout.Messages), layout.Height)

	sb.WriteString("| # | Participant | Flags | Activations | Max depth | State |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, p := range layout.Participants {
		bars, depth := 0, 0
		for _, v := range p.Views {
			if v.Kind == domain.SegmentBar {
				bars++
				depth = max(depth, v.SideLevel)
			}
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %d | %d | %s |\n",
			p.Position, escapeCell(p.Label), strings.Join(p.Flags, ", "), bars, depth, state(p))
	}

	counts := make(map[domain.MessageKind]int)
	for _, m := range layout.Messages {
		counts[m.Kind]++
	}
	sb.WriteString("\n## Messages\n\n")
	for _, kind := range []domain.MessageKind{
		domain.MessageCall, domain.MessageCreate, domain.MessageReturn, domain.MessageDestroy,
	} {
		if n := counts[kind]; n > 0 {
			fmt.Fprintf(&sb, "- %s: %d\n", kind, n)
		}
	}
	return sb.String()
}

func state(p domain.ParticipantLayout) string {
	switch {
	case p.Destroyed:
		return "destroyed"
	case p.Cross != nil:
		return "auto-destroyed"
	case p.Alive:
		return "alive"
	}
	return "never created"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
