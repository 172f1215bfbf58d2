package tools

import (
	"fmt"

	"github.com/BaSui01/anchorflow/anchor"
)

// RegisterAll registers the complete backend tool set on the registry.
// It fails on the first registration error, which only happens when a
// name is already taken.
func RegisterAll(registry Registry, client *anchor.Client) error {
	constructors := []func(*anchor.Client) (Func, Metadata){
		NewSaveKeysTool,
		NewGetKeysTool,
		NewAnalyzerTool,
		NewGetCredsTool,
		NewDockerfileGenTool,
		NewJenkinsfileGenTool,
		NewInfraTool,
		NewGetEnvironmentsTool,
		NewGithubWebhookSetupTool,
		NewCICDPlanTool,
		NewDynamicQuestionTool,
		NewAnswerValidatorTool,
		NewDashboardFileDataTool,
		NewEditFileTool,
		NewGetInstanceIPTool,
	}

	for _, construct := range constructors {
		fn, metadata := construct(client)
		if err := registry.Register(metadata.Schema.Name, fn, metadata); err != nil {
			return fmt.Errorf("register %s: %w", metadata.Schema.Name, err)
		}
	}
	return nil
}
