package anchor

import (
	"context"
	"net/url"
)

// GetCreds fetches the AWS credentials and configuration the backend
// environment is set up with: key pairs, region, VPCs, subnets, and
// security groups.
func (c *Client) GetCreds(ctx context.Context) (any, error) {
	return c.get(ctx, "/creds", nil)
}

// ProvisionInfra generates Terraform configuration under workDir and
// triggers the initial infrastructure setup for the given EC2 instance
// size (e.g. "t2.micro", "t3.medium").
func (c *Client) ProvisionInfra(ctx context.Context, workDir, instanceSize string) (any, error) {
	query := url.Values{}
	query.Set("work_dir", workDir)
	query.Set("instance_size", instanceSize)
	return c.get(ctx, "/infra", query)
}

// GetInstanceIP returns the public IP of the EC2 instance provisioned for
// workDir (where the Terraform state lives). The response carries it under
// public_ip; the backend reports a failure while the address is not yet
// available.
func (c *Client) GetInstanceIP(ctx context.Context, workDir string) (any, error) {
	query := url.Values{}
	query.Set("work_dir", workDir)
	return c.get(ctx, "/get-instance-ip", query)
}
