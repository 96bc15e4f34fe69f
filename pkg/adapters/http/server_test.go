package http_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/seqline"
	"github.com/aretw0/seqline/internal/testutils"
	seqhttp "github.com/aretw0/seqline/pkg/adapters/http"
	"github.com/aretw0/seqline/pkg/adapters/memory"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())
	w := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, seqline.Version, body["version"])
}

func TestRender_Formats(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())

	w := do(t, h, http.MethodPost, "/render", testutils.LoginScenario)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var layout domain.Layout
	require.NoError(t, json.NewDecoder(w.Body).Decode(&layout))
	assert.Equal(t, "login", layout.Name)
	assert.Equal(t, 150, layout.Height)
	assert.Len(t, layout.Messages, 2)

	w = do(t, h, http.MethodPost, "/render?format=svg", testutils.LoginScenario)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")

	w = do(t, h, http.MethodPost, "/render?format=mermaid", testutils.LoginScenario)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "sequenceDiagram\n"))

	w = do(t, h, http.MethodPost, "/render?format=png", testutils.LoginScenario)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/render?save=maybe", testutils.LoginScenario)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRender_ErrorStatus(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())

	w := do(t, h, http.MethodPost, "/render", "participants:\n  - {name: a}\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error    string   `json:"error"`
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Error, "invalid scenario")
	assert.Len(t, body.Problems, 1)

	w = do(t, h, http.MethodPost, "/render", "participants: [unclosed\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/render", "participants:\n  - {name: a, type: A}\nmessages:\n  - {kind: return}\n")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "no activation to return from")
}

func TestLayouts_Lifecycle(t *testing.T) {
	store := memory.NewStore()
	var observed []error
	h := seqhttp.NewHandler(seqline.New(),
		seqhttp.WithStore(store),
		seqhttp.WithRenderObserver(func(_ time.Duration, err error) {
			observed = append(observed, err)
		}),
	)

	w := do(t, h, http.MethodPost, "/render?save=true", testutils.LoginScenario)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", w.Header().Get("X-Layout-Id"))
	assert.Equal(t, "/layouts/login", w.Header().Get("Location"))
	assert.Equal(t, []error{nil}, observed)

	w = do(t, h, http.MethodGet, "/layouts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["login"]`, w.Body.String())

	w = do(t, h, http.MethodGet, "/layouts/login", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"login"`)

	w = do(t, h, http.MethodGet, "/layouts/login/svg", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>login</title>")

	w = do(t, h, http.MethodGet, "/layouts/login/mermaid", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user->>+server: login()")

	w = do(t, h, http.MethodDelete, "/layouts/login", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/layouts/login", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/layouts", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRender_UnnamedLayoutGetsID(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())
	doc := strings.Replace(testutils.LoginScenario, "name: login\n", "", 1)

	w := do(t, h, http.MethodPost, "/render?save=1", doc)
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get("X-Layout-Id")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRender_UnroutableNameGetsID(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())

	for _, name := range []string{"a/b", "with space", ".."} {
		doc := strings.Replace(testutils.LoginScenario, "name: login\n", "name: \""+name+"\"\n", 1)
		w := do(t, h, http.MethodPost, "/render?save=true", doc)
		require.Equal(t, http.StatusOK, w.Code, name)

		id := w.Header().Get("X-Layout-Id")
		_, err := uuid.Parse(id)
		require.NoError(t, err, name)
		assert.Equal(t, "/layouts/"+id, w.Header().Get("Location"))

		w = do(t, h, http.MethodGet, "/layouts/"+id, "")
		require.Equal(t, http.StatusOK, w.Code, name)
		var layout domain.Layout
		require.NoError(t, json.NewDecoder(w.Body).Decode(&layout))
		assert.Equal(t, name, layout.Name)
	}
}

func TestRender_SameNameReplacesLayout(t *testing.T) {
	store := memory.NewStore()
	h := seqhttp.NewHandler(seqline.New(), seqhttp.WithStore(store))

	w := do(t, h, http.MethodPost, "/render?save=true", testutils.LoginScenario)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", w.Header().Get("X-Layout-Id"))

	doc := strings.Replace(testutils.LoginScenario, "text: login()", "text: relogin()", 1)
	w = do(t, h, http.MethodPost, "/render?save=true", doc)
	require.Equal(t, http.StatusOK, w.Code)

	ids, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"login"}, ids)

	saved, err := store.Load(t.Context(), "login")
	require.NoError(t, err)
	assert.Equal(t, "relogin()", saved.Messages[0].Text)
}

func TestCORS_Preflight(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())
	w := do(t, h, http.MethodOptions, "/render", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_RequiresDiagram(t *testing.T) {
	h := seqhttp.NewHandler(seqline.New())
	w := do(t, h, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeEvents_StreamsLifelineEvents(t *testing.T) {
	streams := seqhttp.NewStreamManager(nil)
	eng := seqline.New(seqline.WithLifecycleHooks(streams.Hooks()))
	srv := httptest.NewServer(seqhttp.NewHandler(eng, seqhttp.WithStreams(streams)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events?diagram=login")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	post, err := http.Post(srv.URL+"/render", "application/yaml", strings.NewReader(testutils.LoginScenario))
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var first domain.LifelineEvent
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if data, ok := strings.CutPrefix(line, "data: "); ok && data != "connected\n" {
			require.NoError(t, json.Unmarshal([]byte(data), &first))
			break
		}
	}
	assert.Equal(t, "login", first.Diagram)
	assert.Equal(t, domain.EventActivate, first.Type)
	assert.Equal(t, "server", first.Participant)
}

func TestStreamManager_Unsubscribe(t *testing.T) {
	sm := seqhttp.NewStreamManager(nil)
	ch, cancel := sm.Subscribe("d")

	sm.Broadcast("d", "one")
	assert.Equal(t, "one", <-ch)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	sm.Broadcast("d", "two")
}
