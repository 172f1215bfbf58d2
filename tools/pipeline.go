package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/types"
)

type analyzerArgs struct {
	FolderPath      string `json:"folder_path"`
	EnvironmentPath string `json:"environment_path"`
}

// NewAnalyzerTool inspects a Python project and extracts its application
// context. Run it before the generation tools; its output feeds them.
func NewAnalyzerTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params analyzerArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid analyzer arguments: %w", err)
			}
		}
		result, err := client.Analyze(ctx, params.FolderPath, params.EnvironmentPath)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "analyzer",
			Description: "Analyze the Python project in a folder: resolve its dependencies against a Python environment, generate a requirements file, and detect the app type, working directory, Python version, and entrypoint. Run this before generating a Dockerfile.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"folder_path": {
						"type": "string",
						"description": "Absolute path of the project folder on the backend host"
					},
					"environment_path": {
						"type": "string",
						"description": "Path of the Python interpreter or environment to resolve dependencies against"
					}
				}
			}`),
		},
		Timeout:     2 * time.Minute,
		Description: "Dependency and application-context analysis for a Python project.",
	}

	return fn, metadata
}

type getEnvironmentsArgs struct {
	FolderPath string `json:"folder_path"`
}

// NewGetEnvironmentsTool lists the Python environments usable for a project.
func NewGetEnvironmentsTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params getEnvironmentsArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid get_environments arguments: %w", err)
			}
		}
		result, err := client.GetEnvironments(ctx, params.FolderPath)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "get_environments",
			Description: "List the Python environments detected for a project folder, so one can be picked for analysis.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"folder_path": {
						"type": "string",
						"description": "Absolute path of the project folder on the backend host"
					}
				},
				"required": ["folder_path"]
			}`),
		},
		Description: "Discovers candidate Python environments for a project.",
	}

	return fn, metadata
}

type dockerfileGenArgs struct {
	AppType       string `json:"app_type"`
	PythonVersion string `json:"python_version"`
	WorkDir       string `json:"work_dir"`
	Entrypoint    string `json:"entrypoint"`
	FolderPath    string `json:"folder_path"`
}

// NewDockerfileGenTool generates a Dockerfile from the analyzer's output.
func NewDockerfileGenTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params dockerfileGenArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid dockerfile_gen arguments: %w", err)
			}
		}
		result, err := client.GenerateDockerfile(ctx, anchor.DockerfileRequest{
			AppType:       params.AppType,
			PythonVersion: params.PythonVersion,
			WorkDir:       params.WorkDir,
			Entrypoint:    params.Entrypoint,
			FolderPath:    params.FolderPath,
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "dockerfile_gen",
			Description: "Generate a Dockerfile for the application and write it into the project folder. All parameters come from the analyzer output.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"app_type": {
						"type": "string",
						"description": "Application type detected by the analyzer, e.g. 'streamlit' or 'fastapi'"
					},
					"python_version": {
						"type": "string",
						"description": "Python version to base the image on, e.g. '3.9'"
					},
					"work_dir": {
						"type": "string",
						"description": "Working directory inside the container, e.g. '/app'"
					},
					"entrypoint": {
						"type": "string",
						"description": "Entrypoint script of the application, e.g. 'app.py'"
					},
					"folder_path": {
						"type": "string",
						"description": "Absolute path of the project folder the Dockerfile is written to"
					}
				},
				"required": ["app_type", "python_version", "work_dir", "entrypoint", "folder_path"]
			}`),
		},
		Timeout:     time.Minute,
		Description: "Dockerfile generation from the analyzed application context.",
	}

	return fn, metadata
}

type jenkinsfileGenArgs struct {
	FolderPath string `json:"folder_path"`
	AppName    string `json:"app_name"`
	Port       string `json:"port"`
	Version    string `json:"version"`
}

// NewJenkinsfileGenTool generates a Jenkinsfile pipeline definition.
func NewJenkinsfileGenTool(client *anchor.Client) (Func, Metadata) {
	fn := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var params jenkinsfileGenArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid jenkinsfile_gen arguments: %w", err)
			}
		}
		result, err := client.GenerateJenkinsfile(ctx, anchor.JenkinsfileRequest{
			FolderPath: params.FolderPath,
			AppName:    params.AppName,
			Port:       params.Port,
			Version:    params.Version,
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	}

	metadata := Metadata{
		Schema: types.ToolSchema{
			Name:        "jenkinsfile_gen",
			Description: "Generate a Jenkinsfile for the CI/CD pipeline and write it into the project folder. Only folder_path is required; omit the rest to use backend defaults.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"folder_path": {
						"type": "string",
						"description": "Absolute path of the project folder the Jenkinsfile is written to"
					},
					"app_name": {
						"type": "string",
						"description": "Application name used for the image and deployment, e.g. 'Streamlit-App'"
					},
					"port": {
						"type": "string",
						"description": "Port the application listens on, e.g. '8501'"
					},
					"version": {
						"type": "string",
						"description": "Version tag for the built image, e.g. 'v1'"
					}
				},
				"required": ["folder_path"]
			}`),
		},
		Timeout:     time.Minute,
		Description: "Jenkinsfile generation for the project's build and deploy pipeline.",
	}

	return fn, metadata
}
