package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/seqline/internal/runtime"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "metrics",
		Participants: []domain.Participant{
			{Name: "a", Type: domain.ActorType, Alive: true},
			{Name: "b", Type: "B", Alive: true},
		},
		Messages: []domain.Message{
			{From: "a", To: "b", Text: "x()"},
			{From: "b", To: "a", Text: "callback()"},
			{Kind: domain.MessageReturn},
			{Kind: domain.MessageReturn},
		},
	}
}

func TestMetrics_RecordsEngineEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(m.Hooks()))
	_, err = engine.Render(context.Background(), scenario())
	require.NoError(t, err)

	expected := `
# HELP seqline_messages_total Total number of interpreted messages by kind.
# TYPE seqline_messages_total counter
seqline_messages_total{kind="call"} 2
seqline_messages_total{kind="return"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "seqline_messages_total"))

	count, err := testutil.GatherAndCount(reg, "seqline_lifeline_events_total")
	require.NoError(t, err)
	// activate, spawn, deactivate, dispose, terminate
	assert.Equal(t, 5, count)
}

func TestMetrics_ObserveRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveRender(10*time.Millisecond, nil)
	m.ObserveRender(time.Millisecond, errors.New("bad"))
	m.ObserveRender(time.Millisecond, nil)

	expected := `
# HELP seqline_renders_total Total number of scenario renders by outcome.
# TYPE seqline_renders_total counter
seqline_renders_total{outcome="error"} 1
seqline_renders_total{outcome="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "seqline_renders_total"))
}

func TestNewMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(observability.LogHooks(logger)))
	_, err := engine.Render(context.Background(), scenario())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"lifeline_spawn"`)
	assert.Contains(t, out, `"direction":"right"`)
	assert.Contains(t, out, `"msg":"message"`)
	assert.Equal(t, 4, strings.Count(out, `"msg":"message"`))
}
