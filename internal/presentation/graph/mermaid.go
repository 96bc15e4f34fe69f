package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/seqline/pkg/domain"
)

// externalID stands for the world outside the diagram in messages without sender or receiver.
const externalID = "external"

// MermaidOptions tweaks the generated diagram.
type MermaidOptions struct {
	// AutoNumber prefixes every message with its sequence number.
	AutoNumber bool
}

// GenerateMermaid produces a Mermaid sequenceDiagram from a layout.
// Activations are expressed with the +/- arrow suffixes:
// - call: ->>+
// - create: create participant, then ->>+
// - return: -->>-
// - destroy: destroy, then -x
func GenerateMermaid(layout *domain.Layout, opts *MermaidOptions) string {
	var sb strings.Builder
	sb.WriteString("sequenceDiagram\n")
	if opts != nil && opts.AutoNumber {
		sb.WriteString("    autonumber\n")
	}
	if layout.Name != "" {
		sb.WriteString(fmt.Sprintf("    %%%% %s\n", layout.Name))
	}

	created := make(map[string]bool)
	external := false
	for _, m := range layout.Messages {
		if m.Kind == domain.MessageCreate {
			created[m.To] = true
		}
		if m.From == "" || m.To == "" {
			external = true
		}
	}
	if external {
		sb.WriteString(fmt.Sprintf("    participant %s as *\n", externalID))
	}

	for _, p := range layout.Participants {
		if created[p.Name] {
			continue
		}
		sb.WriteString("    " + declaration(p) + "\n")
	}

	for _, m := range layout.Messages {
		from, to := endpoint(m.From), endpoint(m.To)
		text := escapeText(m.Text)
		switch m.Kind {
		case domain.MessageCreate:
			if p, ok := layout.Participant(m.To); ok {
				sb.WriteString("    create " + declaration(p) + "\n")
			}
			sb.WriteString(fmt.Sprintf("    %s->>+%s: %s\n", from, to, text))
		case domain.MessageReturn:
			sb.WriteString(fmt.Sprintf("    %s-->>-%s: %s\n", from, to, text))
		case domain.MessageDestroy:
			sb.WriteString(fmt.Sprintf("    destroy %s\n", to))
			sb.WriteString(fmt.Sprintf("    %s-x%s: %s\n", from, to, text))
		default:
			sb.WriteString(fmt.Sprintf("    %s->>+%s: %s\n", from, to, text))
		}
	}

	return sb.String()
}

func declaration(p domain.ParticipantLayout) string {
	kind := "participant"
	if p.Type == domain.ActorType {
		kind = "actor"
	}
	label := p.Label
	if label == "" {
		label = p.Name
	}
	return fmt.Sprintf("%s %s as %s", kind, sanitizeMermaidID(p.Name), escapeText(label))
}

func endpoint(name string) string {
	if name == "" {
		return externalID
	}
	return sanitizeMermaidID(name)
}

// escapeText protects characters that end a Mermaid statement.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, ";", "#59;")
	s = strings.ReplaceAll(s, "\r\n", "<br/>")
	return strings.ReplaceAll(s, "\n", "<br/>")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
