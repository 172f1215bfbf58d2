package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

type cicdPlanArgs struct {
	UserRequest string `json:"user_request"`
	ServiceType string `json:"service_type"`
}

// NewCICDPlanTool asks the Acube planner for a CI/CD execution plan.
func NewCICDPlanTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params cicdPlanArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid acube_cicd_plan arguments: %w", err)
			}
		}
		result, err := client.CICDPlan(ctx, params.UserRequest, params.ServiceType)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "acube_cicd_plan",
			Description: "Generate a CI/CD plan for a natural language request and a service type. Success responses carry Reasoning_Steps and Tool_Execution_Order; a failed IAM check comes back as a Credential Error with IAM_Check_Details.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_request": {
						"type": "string",
						"description": "What the user wants to deploy, in natural language"
					},
					"service_type": {
						"type": "string",
						"description": "Target service type, e.g. 'streamlit' or 'aws-lambda'"
					}
				},
				"required": ["user_request", "service_type"]
			}`),
		},
		Timeout:     2 * time.Minute,
		Description: "Acube planning: turns a deployment request into an ordered tool plan.",
	}

	return fn, metadata
}

type dynamicQuestionArgs struct {
	ToolName string `json:"tool_name"`
}

// NewDynamicQuestionTool fetches the next interactive question for a tool.
func NewDynamicQuestionTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params dynamicQuestionArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid acube_dynamic_question arguments: %w", err)
			}
		}
		result, err := client.DynamicQuestion(ctx, params.ToolName)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "acube_dynamic_question",
			Description: "Get the next question the user must answer before a planned tool can run. Returns 'Pass' when the tool has nothing left to ask.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"tool_name": {
						"type": "string",
						"description": "Name of the planned tool to fetch the question for"
					}
				},
				"required": ["tool_name"]
			}`),
		},
		Description: "Acube interactive flow: fetches the pending question for a tool.",
	}

	return fn, metadata
}

type answerValidatorArgs struct {
	ToolName string `json:"tool_name"`
	Answer   string `json:"answer"`
}

// NewAnswerValidatorTool validates a user's answer to a dynamic question.
func NewAnswerValidatorTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params answerValidatorArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid acube_answer_validator arguments: %w", err)
			}
		}
		result, err := client.ValidateAnswer(ctx, params.ToolName, params.Answer)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "acube_answer_validator",
			Description: "Submit the user's natural language answer to a tool's question. The backend extracts the tool's variables from it and returns them on success.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"tool_name": {
						"type": "string",
						"description": "Name of the planned tool the answer belongs to"
					},
					"answer": {
						"type": "string",
						"description": "The user's answer, in natural language"
					}
				},
				"required": ["tool_name", "answer"]
			}`),
		},
		Description: "Acube interactive flow: validates an answer and extracts tool variables.",
	}

	return fn, metadata
}
