package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/tools"
	"github.com/BaSui01/anchorflow/types"
)

// newTestAgent wires a full stack against a stubbed backend: client,
// registry with every tool, executor, and an agent with the given
// whitelist.
func newTestAgent(t *testing.T, whitelist []string, handler http.HandlerFunc) *Agent {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anchor.New(anchor.Config{BaseURL: server.URL}, zap.NewNop())
	registry := tools.NewDefaultRegistry(zap.NewNop())
	require.NoError(t, tools.RegisterAll(registry, client))
	executor := tools.NewDefaultExecutor(registry, zap.NewNop())

	cfg := DefaultOrchestrator()
	cfg.Tools = whitelist

	a, err := New(cfg, registry, executor, zap.NewNop())
	require.NoError(t, err)
	return a
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"status": "success"}`))
}

func TestNew_InvalidConfig(t *testing.T) {
	registry := tools.NewDefaultRegistry(zap.NewNop())
	executor := tools.NewDefaultExecutor(registry, zap.NewNop())

	_, err := New(Config{}, registry, executor, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, types.ErrInvalidRequest, types.GetErrorCode(err))
}

func TestNew_RequiresRegistryAndExecutor(t *testing.T) {
	cfg := DefaultOrchestrator()
	registry := tools.NewDefaultRegistry(zap.NewNop())
	executor := tools.NewDefaultExecutor(registry, zap.NewNop())

	_, err := New(cfg, nil, executor, zap.NewNop())
	assert.ErrorContains(t, err, "tool registry")

	_, err = New(cfg, registry, nil, zap.NewNop())
	assert.ErrorContains(t, err, "tool executor")
}

func TestAgent_ToolSchemas_Whitelisted(t *testing.T) {
	a := newTestAgent(t, []string{"analyzer", "get_creds"}, okHandler)

	schemas := a.ToolSchemas()
	require.Len(t, schemas, 2)

	names := []string{schemas[0].Name, schemas[1].Name}
	assert.Contains(t, names, "analyzer")
	assert.Contains(t, names, "get_creds")
}

func TestAgent_ToolSchemas_EmptyWhitelistExposesAll(t *testing.T) {
	a := newTestAgent(t, nil, okHandler)

	assert.Len(t, a.ToolSchemas(), 15)
}

func TestAgent_Allowed(t *testing.T) {
	a := newTestAgent(t, []string{"analyzer"}, okHandler)

	assert.True(t, a.Allowed("analyzer"))
	assert.False(t, a.Allowed("edit_file"))

	unrestricted := newTestAgent(t, nil, okHandler)
	assert.True(t, unrestricted.Allowed("edit_file"))
}

func TestAgent_Execute_RefusesNonWhitelistedCalls(t *testing.T) {
	var backendCalls atomic.Int32
	a := newTestAgent(t, []string{"get_creds"}, func(w http.ResponseWriter, r *http.Request) {
		backendCalls.Add(1)
		okHandler(w, r)
	})

	results := a.Execute(context.Background(), []types.ToolCall{
		{ID: "c1", Name: "get_creds"},
		{ID: "c2", Name: "edit_file", Arguments: json.RawMessage(`{}`)},
		{ID: "c3", Name: "get_creds"},
	})
	require.Len(t, results, 3)

	assert.False(t, results[0].IsError())
	assert.Equal(t, "c1", results[0].ToolCallID)

	assert.True(t, results[1].IsError())
	assert.Contains(t, results[1].Error, "not allowed")
	assert.Equal(t, "c2", results[1].ToolCallID)

	assert.False(t, results[2].IsError())
	assert.Equal(t, "c3", results[2].ToolCallID)

	assert.Equal(t, int32(2), backendCalls.Load(), "refused call must not reach the backend")
}

func TestAgent_Call(t *testing.T) {
	a := newTestAgent(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "public_ip": "3.91.107.2"}`))
	})

	result := a.Call(context.Background(), "get_instance_ip", json.RawMessage(`{"work_dir": "/app"}`))
	require.False(t, result.IsError(), "unexpected error: %s", result.Error)
	assert.NotEmpty(t, result.ToolCallID)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(result.Result, &decoded))
	assert.Equal(t, "3.91.107.2", decoded["public_ip"])
}

func TestAgent_Call_UnknownTool(t *testing.T) {
	a := newTestAgent(t, nil, okHandler)

	result := a.Call(context.Background(), "nonexistent", nil)
	assert.True(t, result.IsError())
	assert.Contains(t, result.Error, "tool not found")
}
