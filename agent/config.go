package agent

import (
	"github.com/BaSui01/anchorflow/types"
)

// Config is an orchestrator profile: the model running the conversation,
// its instruction, and the tools it may reach.
type Config struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Model       string            `json:"model" yaml:"model"`
	Instruction string            `json:"instruction" yaml:"instruction"`
	Temperature float32           `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// Tools whitelists tool names for this agent. Empty means every
	// registered tool is allowed.
	Tools    []string          `json:"tools,omitempty" yaml:"tools,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks the required profile fields.
func (c *Config) Validate() error {
	if c.ID == "" {
		return types.NewError(types.ErrInvalidRequest, "agent ID is required")
	}
	if c.Name == "" {
		return types.NewError(types.ErrInvalidRequest, "agent name is required")
	}
	if c.Model == "" {
		return types.NewError(types.ErrInvalidRequest, "agent model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return types.NewError(types.ErrInvalidRequest, "agent temperature must be between 0 and 2")
	}
	return nil
}

// DefaultOrchestrator returns the stock DevOps orchestrator profile: a
// low-temperature planner over the analysis, generation, credential, and
// infrastructure tools.
func DefaultOrchestrator() Config {
	return Config{
		ID:    "anchor-orchestrator",
		Name:  "anchor_orchestrator",
		Model: "gemini-2.0-flash",
		Instruction: "You are the orchestrator of the below tools. A user is trying to solve " +
			"a devops issue and needs your help to come up with a step by step plan. " +
			"Think of a strategy to solve their problem by making use of these tools " +
			"in any order. The result of using all of these should solve the user's problem.",
		Temperature: 0.2,
		Tools: []string{
			"analyzer",
			"dockerfile_gen",
			"jenkinsfile_gen",
			"get_creds",
			"infra",
			"get_environments",
			"github_webhook_setup",
		},
	}
}
