package anchor

import (
	"context"
	"net/url"
)

// DockerfileRequest describes the application context for Dockerfile
// generation. All fields are required; Analyze produces them.
type DockerfileRequest struct {
	AppType       string // e.g. "streamlit", "fastapi"
	PythonVersion string // e.g. "3.9"
	WorkDir       string // working directory inside the container, e.g. "/app"
	Entrypoint    string // entrypoint script, e.g. "app.py"
	FolderPath    string // server-side folder the Dockerfile is written to
}

// GenerateDockerfile writes a Dockerfile into req.FolderPath on the backend.
func (c *Client) GenerateDockerfile(ctx context.Context, req DockerfileRequest) (any, error) {
	query := url.Values{}
	query.Set("app_type", req.AppType)
	query.Set("python_version", req.PythonVersion)
	query.Set("work_dir", req.WorkDir)
	query.Set("entrypoint", req.Entrypoint)
	query.Set("folder_path", req.FolderPath)
	return c.get(ctx, "/dockerfile-gen", query)
}

// JenkinsfileRequest describes Jenkinsfile generation. Only FolderPath is
// required; empty optional fields are omitted from the request.
type JenkinsfileRequest struct {
	FolderPath string // server-side folder the Jenkinsfile is written to
	AppName    string // optional, e.g. "Streamlit-App"
	Port       string // optional, e.g. "8501"
	Version    string // optional, e.g. "v1"
}

// GenerateJenkinsfile writes a Jenkinsfile into req.FolderPath on the backend.
func (c *Client) GenerateJenkinsfile(ctx context.Context, req JenkinsfileRequest) (any, error) {
	query := url.Values{}
	query.Set("folder_path", req.FolderPath)
	if req.AppName != "" {
		query.Set("app_name", req.AppName)
	}
	if req.Port != "" {
		query.Set("port", req.Port)
	}
	if req.Version != "" {
		query.Set("version", req.Version)
	}
	return c.get(ctx, "/jenkinsfile-gen", query)
}
