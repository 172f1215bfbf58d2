package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

type saveKeysArgs struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// NewSaveKeysTool stores an SSH key pair on the backend.
func NewSaveKeysTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params saveKeysArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid save_keys arguments: %w", err)
			}
		}
		result, err := client.SaveKeys(ctx, params.PublicKey, params.PrivateKey)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "save_keys",
			Description: "Save an SSH key pair on the backend for later instance access. The private key must be base64 encoded.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"public_key": {
						"type": "string",
						"description": "The SSH public key"
					},
					"private_key": {
						"type": "string",
						"description": "The SSH private key, base64 encoded"
					}
				},
				"required": ["public_key", "private_key"]
			}`),
		},
		Description: "Stores an SSH key pair server-side so provisioned instances can be reached.",
	}

	return fn, metadata
}

// NewGetKeysTool retrieves the stored SSH key pair.
func NewGetKeysTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		result, err := client.GetKeys(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "get_keys",
			Description: "Retrieve the SSH key pair stored on the backend. The private key comes back base64 encoded.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		Description: "Reads back the stored SSH key pair.",
	}

	return fn, metadata
}
