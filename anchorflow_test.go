package anchorflow_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/anchorflow"
	"github.com/BaSui01/anchorflow/agent"
	"github.com/BaSui01/anchorflow/testutil"
	"github.com/BaSui01/anchorflow/testutil/fixtures"
)

func TestNew_Defaults(t *testing.T) {
	a, err := anchorflow.New()
	require.NoError(t, err)

	cfg := a.Config()
	assert.Equal(t, "anchor_orchestrator", cfg.Name)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Len(t, a.ToolSchemas(), 7)
}

func TestNew_WithToolsNoNamesExposesAll(t *testing.T) {
	a, err := anchorflow.New(anchorflow.WithTools())
	require.NoError(t, err)
	assert.Len(t, a.ToolSchemas(), 15)
}

func TestNew_ProfileOverrides(t *testing.T) {
	a, err := anchorflow.New(
		anchorflow.WithName("release-bot"),
		anchorflow.WithModel("gemini-2.5-pro"),
		anchorflow.WithInstruction("Ship it."),
		anchorflow.WithTools("analyzer"),
	)
	require.NoError(t, err)

	cfg := a.Config()
	assert.Equal(t, "release-bot", cfg.Name)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, "Ship it.", cfg.Instruction)
	require.Len(t, a.ToolSchemas(), 1)
	assert.Equal(t, "analyzer", a.ToolSchemas()[0].Name)
}

func TestNew_InvalidProfile(t *testing.T) {
	_, err := anchorflow.New(anchorflow.WithAgentConfig(agent.Config{}))
	require.Error(t, err)
}

func TestNew_AgainstFakeBackend(t *testing.T) {
	backend := testutil.NewBackend(t).
		Handle("GET", "/creds", 200, fixtures.CredsSuccess()).
		Handle("GET", "/get-instance-ip", 200, fixtures.InstanceIPSuccess("3.91.107.2"))

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools("get_creds", "get_instance_ip"),
	)
	require.NoError(t, err)

	ctx := testutil.TestContext(t)

	credsRes := a.Call(ctx, "get_creds", nil)
	require.False(t, credsRes.IsError(), credsRes.Error)
	creds := testutil.MustParseJSON[map[string]any](string(credsRes.Result))
	testutil.AssertJSONEqual(t, map[string]any{
		"status": "success",
		"aws":    "configured",
		"github": "configured",
		"region": "us-east-1",
	}, creds)

	ipRes := a.Call(ctx, "get_instance_ip", json.RawMessage(`{"work_dir": "deploy/"}`))
	require.False(t, ipRes.IsError(), ipRes.Error)
	ip := testutil.MustParseJSON[map[string]any](string(ipRes.Result))
	assert.Equal(t, "3.91.107.2", ip["public_ip"])

	last, ok := backend.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "/get-instance-ip", last.Path)
	assert.Equal(t, "deploy/", last.Query.Get("work_dir"))
}

func TestNew_PipelineFlow(t *testing.T) {
	backend := testutil.NewBackend(t).
		Handle("POST", "/analyzer", 200, fixtures.AnalyzerSuccess()).
		Handle("GET", "/acube/cicdplan", 200, fixtures.PlanSuccess()).
		Handle("GET", "/dashboard-file-data", 200, fixtures.DashboardSuccess()).
		Handle("GET", "/api/get-keys", 200, fixtures.KeysSuccess())

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools(),
	)
	require.NoError(t, err)

	ctx := testutil.TestContext(t)

	plan := a.Call(ctx, "acube_cicd_plan", json.RawMessage(testutil.MustJSON(map[string]string{
		"user_request": "deploy my streamlit app",
		"service_type": "streamlit",
	})))
	require.False(t, plan.IsError(), plan.Error)
	planBody := testutil.MustParseJSON[map[string]any](string(plan.Result))
	assert.Equal(t, []any{"analyzer", "dockerfile_gen"}, planBody["Tool_Execution_Order"])

	analysis := a.Call(ctx, "analyzer", json.RawMessage(`{"folder_path": "/srv/app"}`))
	require.False(t, analysis.IsError(), analysis.Error)
	analysisBody := testutil.MustParseJSON[map[string]any](string(analysis.Result))
	assert.Equal(t, "streamlit", analysisBody["app_type"])
	assert.Equal(t, "app.py", analysisBody["entrypoint"])

	files := a.Call(ctx, "dashboard_file_data", nil)
	require.False(t, files.IsError(), files.Error)
	filesBody := testutil.MustParseJSON[map[string]any](string(files.Result))
	require.Len(t, filesBody["files_data"], 2)

	keys := a.Call(ctx, "get_keys", nil)
	require.False(t, keys.IsError(), keys.Error)
	keysBody := testutil.MustParseJSON[map[string]any](string(keys.Result))
	stored, ok := keysBody["keys"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, stored["public_key"])

	assert.Len(t, backend.Requests(), 4)
}

func TestNew_BackendErrorSurfacesInResult(t *testing.T) {
	backend := testutil.NewBackend(t).
		Handle("GET", "/creds", 200, fixtures.Error("AWS credentials not found"))

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools("get_creds"),
	)
	require.NoError(t, err)

	res := a.Call(testutil.TestContext(t), "get_creds", nil)
	require.True(t, res.IsError())
	assert.Contains(t, res.Error, "AWS credentials not found")
}

func TestNew_ValidationErrorSurfacesFieldName(t *testing.T) {
	backend := testutil.NewBackend(t).
		Handle("GET", "/github-webhook-setup", 422, fixtures.ValidationError("query", "folder_path"))

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools("github_webhook_setup"),
	)
	require.NoError(t, err)

	res := a.Call(testutil.TestContext(t), "github_webhook_setup", json.RawMessage(`{}`))
	require.True(t, res.IsError())
	assert.Contains(t, res.Error, "folder_path: field required")
}

func TestNew_CancelledContextFailsCall(t *testing.T) {
	backend := testutil.NewBackend(t).
		Handle("GET", "/creds", 200, fixtures.CredsSuccess())

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools("get_creds"),
	)
	require.NoError(t, err)

	res := a.Call(testutil.CancelledContext(), "get_creds", nil)
	assert.True(t, res.IsError())
}

func TestNew_RefusesToolOutsideWhitelist(t *testing.T) {
	backend := testutil.NewBackend(t)

	a, err := anchorflow.New(
		anchorflow.WithBaseURL(backend.URL()),
		anchorflow.WithTools("get_creds"),
	)
	require.NoError(t, err)

	res := a.Call(testutil.TestContext(t), "edit_file", json.RawMessage(`{"filename": "a"}`))
	require.True(t, res.IsError())
	assert.Contains(t, res.Error, "not allowed")
	assert.Empty(t, backend.Requests())
}
