package anchor

import "context"

// DashboardFileData retrieves the content of the generated files
// (Dockerfile, Jenkinsfile, and friends) from the backend's configured
// location, as shown on the dashboard. An empty result is still a success
// with files_data set to an empty list.
func (c *Client) DashboardFileData(ctx context.Context) (any, error) {
	return c.get(ctx, "/dashboard-file-data", nil)
}

type editFilePayload struct {
	Filename     string `json:"filename"`
	OriginalCode string `json:"original_code"`
	Prompt       string `json:"prompt"`
}

// EditFile asks the backend to rewrite a file according to a natural
// language prompt and write the result back. filename is resolved against
// the backend's base path.
func (c *Client) EditFile(ctx context.Context, filename, originalCode, prompt string) (any, error) {
	return c.post(ctx, "/edit-file", editFilePayload{
		Filename:     filename,
		OriginalCode: originalCode,
		Prompt:       prompt,
	})
}
