package anchor

import (
	"context"
	"net/url"
)

// analyzerPayload omits empty fields rather than sending empty values.
type analyzerPayload struct {
	FolderPath      string `json:"folder_path,omitempty"`
	EnvironmentPath string `json:"environment_path,omitempty"`
}

// Analyze inspects the Python project under folderPath: it resolves
// dependencies against the interpreter at environmentPath, generates a
// requirements file, and extracts the application context. A successful
// response carries app_type, work_dir, and entrypoint alongside the
// environment path, which feed directly into GenerateDockerfile.
func (c *Client) Analyze(ctx context.Context, folderPath, environmentPath string) (any, error) {
	return c.post(ctx, "/analyzer", analyzerPayload{
		FolderPath:      folderPath,
		EnvironmentPath: environmentPath,
	})
}

// GetEnvironments lists the Python versions the backend finds under
// folderPath: system interpreters plus conda and brew environments.
func (c *Client) GetEnvironments(ctx context.Context, folderPath string) (any, error) {
	query := url.Values{}
	query.Set("folder_path", folderPath)
	return c.get(ctx, "/get-environments", query)
}
