package anchor

import (
	"context"
	"net/url"
)

// SetupGithubWebhook creates a GitHub webhook for the repository checked
// out under folderPath. GitHub credentials must already be configured on
// the backend.
func (c *Client) SetupGithubWebhook(ctx context.Context, folderPath string) (any, error) {
	query := url.Values{}
	query.Set("folder_path", folderPath)
	return c.get(ctx, "/github-webhook-setup", query)
}
