package svg_test

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/seqline/internal/presentation/svg"
	"github.com/aretw0/seqline/internal/runtime"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout(t *testing.T) *domain.Layout {
	t.Helper()
	sc := &domain.Scenario{
		Name: "a < b",
		Participants: []domain.Participant{
			{Name: "user", Type: domain.ActorType, Alive: true},
			{Name: "server", Type: "Server", Alive: true, Flags: domain.NewFlags(domain.FlagAutoDestroy)},
		},
		Messages: []domain.Message{
			{From: "user", To: "server", Text: "get<T>()"},
			{From: "server", To: "server", Text: "cache()"},
			{Kind: domain.MessageReturn},
			{Kind: domain.MessageReturn},
		},
	}
	layout, err := runtime.NewEngine().Render(context.Background(), sc)
	require.NoError(t, err)
	return layout
}

// wellFormed walks the whole document with the XML tokenizer.
func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestString_IsWellFormed(t *testing.T) {
	layout := sampleLayout(t)
	out := svg.String(layout)

	wellFormed(t, out)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>a &lt; b</title>")
	assert.Contains(t, out, "get&lt;T&gt;()")
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, `stroke-dasharray="6,4"`)
}

func TestString_DrawsEveryCrossOnce(t *testing.T) {
	layout := sampleLayout(t)
	require.Len(t, layout.Extras, 1)

	out := svg.String(layout)
	assert.Equal(t, 1, strings.Count(out, `stroke-width="2"`))
}

func TestString_SkipsInvisibleParticipants(t *testing.T) {
	layout, err := runtime.NewEngine().Render(context.Background(), &domain.Scenario{
		Participants: []domain.Participant{{Name: "ghost", Type: "Ghost"}},
	})
	require.NoError(t, err)

	out := svg.String(layout)
	assert.NotContains(t, out, "ghost:Ghost")
	assert.NotContains(t, out, "<line")
}

func TestRender_WritesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, svg.Render(&buf, sampleLayout(t)))
	assert.Equal(t, svg.String(sampleLayout(t)), buf.String())
}
