package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/tools"
	"github.com/BaSui01/anchorflow/types"
)

// Agent couples an orchestrator profile with a tool registry and executor.
// It exposes the filtered schemas a model runtime needs and executes the
// calls the model makes, refusing anything outside the whitelist.
type Agent struct {
	cfg      Config
	registry tools.Registry
	executor tools.Executor
	logger   *zap.Logger
}

// New validates the profile and binds it to the registry and executor.
// A nil logger is replaced with a noop one.
func New(cfg Config, registry tools.Registry, executor tools.Executor, logger *zap.Logger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, types.NewError(types.ErrInvalidRequest, "agent requires a tool registry")
	}
	if executor == nil {
		return nil, types.NewError(types.ErrInvalidRequest, "agent requires a tool executor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("agent created",
		zap.String("id", cfg.ID),
		zap.String("model", cfg.Model),
		zap.Int("whitelisted_tools", len(cfg.Tools)),
	)

	return &Agent{
		cfg:      cfg,
		registry: registry,
		executor: executor,
		logger:   logger,
	}, nil
}

// Config returns the agent's profile.
func (a *Agent) Config() Config {
	return a.cfg
}

// ToolSchemas returns the schemas of the tools this agent may call, for
// handing to the model runtime. An empty whitelist exposes everything.
func (a *Agent) ToolSchemas() []types.ToolSchema {
	return filterSchemas(a.registry.List(), a.cfg.Tools)
}

// Allowed reports whether the agent may call the named tool.
func (a *Agent) Allowed(name string) bool {
	if len(a.cfg.Tools) == 0 {
		return true
	}
	for _, allowed := range a.cfg.Tools {
		if allowed == name {
			return true
		}
	}
	return false
}

// Execute runs the model's tool calls. Calls outside the whitelist are
// answered with an error result without touching the registry; everything
// else goes through the executor concurrently, results in call order.
func (a *Agent) Execute(ctx context.Context, calls []types.ToolCall) []types.ToolResult {
	results := make([]types.ToolResult, len(calls))

	allowed := make([]types.ToolCall, 0, len(calls))
	positions := make([]int, 0, len(calls))
	for i, call := range calls {
		if !a.Allowed(call.Name) {
			a.logger.Warn("tool call refused", zap.String("name", call.Name), zap.String("agent", a.cfg.ID))
			results[i] = types.ToolResult{
				ToolCallID: call.ID,
				Name:       call.Name,
				Error:      fmt.Sprintf("tool %s is not allowed for agent %s", call.Name, a.cfg.ID),
			}
			continue
		}
		allowed = append(allowed, call)
		positions = append(positions, i)
	}

	for i, result := range a.executor.Execute(ctx, allowed) {
		results[positions[i]] = result
	}
	return results
}

// Call executes a single named tool with raw JSON arguments, generating a
// call ID. Convenience for the CLI and direct library use.
func (a *Agent) Call(ctx context.Context, name string, args json.RawMessage) types.ToolResult {
	results := a.Execute(ctx, []types.ToolCall{{
		ID:        "call-" + uuid.NewString(),
		Name:      name,
		Arguments: args,
	}})
	return results[0]
}

// filterSchemas keeps the schemas named by the whitelist, preserving
// registry order. An empty whitelist keeps everything.
func filterSchemas(all []types.ToolSchema, whitelist []string) []types.ToolSchema {
	if len(whitelist) == 0 {
		return all
	}
	allowed := make(map[string]struct{}, len(whitelist))
	for _, name := range whitelist {
		if name == "" {
			continue
		}
		allowed[name] = struct{}{}
	}
	out := make([]types.ToolSchema, 0, len(all))
	for _, s := range all {
		if _, ok := allowed[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out
}
