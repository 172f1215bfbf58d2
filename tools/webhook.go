package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

type webhookArgs struct {
	FolderPath string `json:"folder_path"`
}

// NewGithubWebhookSetupTool registers a GitHub webhook for the project's
// repository. The backend talks to the GitHub API, so calls are rate
// limited.
func NewGithubWebhookSetupTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params webhookArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid github_webhook_setup arguments: %w", err)
			}
		}
		result, err := client.SetupGithubWebhook(ctx, params.FolderPath)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "github_webhook_setup",
			Description: "Create a GitHub webhook for the repository checked out under the project folder, so pushes trigger the pipeline. GitHub credentials must already be configured on the backend.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"folder_path": {
						"type": "string",
						"description": "Absolute path of the project folder containing the git checkout"
					}
				},
				"required": ["folder_path"]
			}`),
		},
		RateLimit:   &RateLimitConfig{MaxCalls: 10, Window: time.Minute},
		Timeout:     time.Minute,
		Description: "GitHub webhook registration for push-triggered builds.",
	}

	return fn, metadata
}
