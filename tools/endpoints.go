package tools

import (
	"net/http"

	"github.com/BaSui01/anchorflow/tools/openapi"
)

// BoundEndpoints returns the backend route behind every tool RegisterAll
// installs. Feed it to openapi.VerifyBindings to check a live deployment
// still serves what the tool belt expects.
func BoundEndpoints() []openapi.Endpoint {
	return []openapi.Endpoint{
		{Tool: "save_keys", Method: http.MethodPost, Path: "/api/save-keys"},
		{Tool: "get_keys", Method: http.MethodGet, Path: "/api/get-keys"},
		{Tool: "analyzer", Method: http.MethodPost, Path: "/analyzer"},
		{Tool: "get_creds", Method: http.MethodGet, Path: "/creds"},
		{Tool: "dockerfile_gen", Method: http.MethodGet, Path: "/dockerfile-gen"},
		{Tool: "jenkinsfile_gen", Method: http.MethodGet, Path: "/jenkinsfile-gen"},
		{Tool: "infra", Method: http.MethodGet, Path: "/infra"},
		{Tool: "get_environments", Method: http.MethodGet, Path: "/get-environments"},
		{Tool: "github_webhook_setup", Method: http.MethodGet, Path: "/github-webhook-setup"},
		{Tool: "acube_cicd_plan", Method: http.MethodGet, Path: "/acube/cicdplan"},
		{Tool: "acube_dynamic_question", Method: http.MethodGet, Path: "/acube/dynamicquestion"},
		{Tool: "acube_answer_validator", Method: http.MethodGet, Path: "/acube/answervalidator"},
		{Tool: "dashboard_file_data", Method: http.MethodGet, Path: "/dashboard-file-data"},
		{Tool: "edit_file", Method: http.MethodPost, Path: "/edit-file"},
		{Tool: "get_instance_ip", Method: http.MethodGet, Path: "/get-instance-ip"},
	}
}
