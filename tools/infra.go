package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

// NewGetCredsTool fetches the backend's AWS credentials and configuration.
func NewGetCredsTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		result, err := client.GetCreds(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "get_creds",
			Description: "Fetch the AWS credentials and environment configuration the backend is set up with: key pairs, region, VPCs, subnets, and security groups. Use this to verify access before provisioning.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		Description: "Reads the backend's AWS credential and network configuration.",
	}

	return fn, metadata
}

type infraArgs struct {
	WorkDir      string `json:"work_dir"`
	InstanceSize string `json:"instance_size"`
}

// NewInfraTool provisions EC2 infrastructure via Terraform. Provisioning is
// synchronous and slow; the timeout is sized accordingly.
func NewInfraTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params infraArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid infra arguments: %w", err)
			}
		}
		result, err := client.ProvisionInfra(ctx, params.WorkDir, params.InstanceSize)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "infra",
			Description: "Generate Terraform configuration under the working directory and provision an EC2 instance of the given size. This call blocks until provisioning finishes.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"work_dir": {
						"type": "string",
						"description": "Directory on the backend host where the Terraform configuration and state live"
					},
					"instance_size": {
						"type": "string",
						"description": "EC2 instance type, e.g. 't2.micro' or 't3.medium'"
					}
				},
				"required": ["work_dir", "instance_size"]
			}`),
		},
		RateLimit:   &RateLimitConfig{MaxCalls: 5, Window: time.Minute},
		Timeout:     5 * time.Minute,
		Description: "Terraform-backed EC2 provisioning; rate limited to avoid overlapping applies.",
	}

	return fn, metadata
}

type getInstanceIPArgs struct {
	WorkDir string `json:"work_dir"`
}

// NewGetInstanceIPTool looks up the public IP of the provisioned instance.
func NewGetInstanceIPTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params getInstanceIPArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid get_instance_ip arguments: %w", err)
			}
		}
		result, err := client.GetInstanceIP(ctx, params.WorkDir)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "get_instance_ip",
			Description: "Return the public IP of the EC2 instance provisioned for the working directory. Fails while the address is not yet available.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"work_dir": {
						"type": "string",
						"description": "Directory on the backend host where the Terraform state lives"
					}
				},
				"required": ["work_dir"]
			}`),
		},
		Description: "Public IP lookup for the provisioned instance.",
	}

	return fn, metadata
}
