package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

// NewDashboardFileDataTool reads the generated files for display.
func NewDashboardFileDataTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		result, err := client.DashboardFileData(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "dashboard_file_data",
			Description: "Read the content of the generated files (Dockerfile, Jenkinsfile, and friends) from the backend. An empty files_data list means nothing has been generated yet.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		Description: "Fetches generated file contents for inspection.",
	}

	return fn, metadata
}

type editFileArgs struct {
	Filename     string `json:"filename"`
	OriginalCode string `json:"original_code"`
	Prompt       string `json:"prompt"`
}

// NewEditFileTool rewrites a generated file according to a prompt.
func NewEditFileTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params editFileArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid edit_file arguments: %w", err)
			}
		}
		result, err := client.EditFile(ctx, params.Filename, params.OriginalCode, params.Prompt)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "edit_file",
			Description: "Rewrite a generated file according to a natural language prompt and save the result back on the backend.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filename": {
						"type": "string",
						"description": "Name of the file to edit, e.g. 'Dockerfile', resolved against the backend's base path"
					},
					"original_code": {
						"type": "string",
						"description": "Current content of the file"
					},
					"prompt": {
						"type": "string",
						"description": "Natural language instruction describing the desired change"
					}
				},
				"required": ["filename", "original_code", "prompt"]
			}`),
		},
		Timeout:     2 * time.Minute,
		Description: "Prompt-driven rewrite of a generated file.",
	}

	return fn, metadata
}
