package anchor

import (
	"context"
	"net/url"
)

// CICDPlan asks the Acube orchestrator for a CI/CD plan matching a natural
// language request and a service type (e.g. "streamlit", "aws-lambda").
// Success responses carry Reasoning_Steps and Tool_Execution_Order; a
// failed IAM check comes back as a Credential Error with IAM_Check_Details.
func (c *Client) CICDPlan(ctx context.Context, userRequest, serviceType string) (any, error) {
	query := url.Values{}
	query.Set("user_request", userRequest)
	query.Set("service_type", serviceType)
	return c.get(ctx, "/acube/cicdplan", query)
}

// DynamicQuestion fetches the next interactive question for a tool in the
// Acube flow. The answer depends on the tool's state; a tool with nothing
// left to ask returns "Pass".
func (c *Client) DynamicQuestion(ctx context.Context, toolName string) (any, error) {
	query := url.Values{}
	query.Set("tool_name", toolName)
	return c.get(ctx, "/acube/dynamicquestion", query)
}

// ValidateAnswer submits a natural language answer to a tool's dynamic
// question. The backend extracts the tool's variables from it and returns
// them under variables on success.
func (c *Client) ValidateAnswer(ctx context.Context, toolName, answer string) (any, error) {
	query := url.Values{}
	query.Set("tool_name", toolName)
	query.Set("answer", answer)
	return c.get(ctx, "/acube/answervalidator", query)
}
