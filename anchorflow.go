// Package anchorflow provides a top-level convenience entry point for
// building the orchestrator agent with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/anchorflow"
//
//	a, err := anchorflow.New()
//	a, err := anchorflow.New(anchorflow.WithBaseURL("http://anchor.internal:8084"))
//	a, err := anchorflow.New(anchorflow.WithTools("analyzer", "dockerfile_gen"))
//
// New wires the anchor client, registers every backend tool and binds the
// stock orchestrator profile. Use the agent, anchor and tools packages
// directly when you need more control over the assembly.
package anchorflow

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/agent"
	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/internal/metrics"
	"github.com/BaSui01/anchorflow/tools"
)

// Option configures the agent created by [New].
type Option func(*options)

type options struct {
	baseURL          string
	timeout          time.Duration
	logger           *zap.Logger
	metricsNamespace string
	profile          agent.Config
	toolOverride     []string
}

// WithBaseURL points the client at a backend other than the local default.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithTimeout bounds every backend HTTP call. Provisioning endpoints block
// until Terraform finishes, so keep this generous.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics enables Prometheus collection under the given namespace.
// Each namespace registers collectors in the default registry, so use a
// namespace only once per process.
func WithMetrics(namespace string) Option {
	return func(o *options) { o.metricsNamespace = namespace }
}

// WithAgentConfig replaces the stock orchestrator profile entirely.
func WithAgentConfig(cfg agent.Config) Option {
	return func(o *options) { o.profile = cfg }
}

// WithModel overrides the profile's model name.
func WithModel(model string) Option {
	return func(o *options) { o.profile.Model = model }
}

// WithName overrides the profile's agent name.
func WithName(name string) Option {
	return func(o *options) { o.profile.Name = name }
}

// WithInstruction overrides the profile's instruction text.
func WithInstruction(instruction string) Option {
	return func(o *options) { o.profile.Instruction = instruction }
}

// WithTools replaces the tool whitelist. Pass no names to expose every
// registered tool.
func WithTools(names ...string) Option {
	return func(o *options) { o.toolOverride = names }
}

// New creates the orchestrator agent with every backend tool registered.
func New(opts ...Option) (*agent.Agent, error) {
	o := &options{
		profile: agent.DefaultOrchestrator(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.toolOverride != nil {
		o.profile.Tools = o.toolOverride
	}

	var collector *metrics.Collector
	if o.metricsNamespace != "" {
		collector = metrics.NewCollector(o.metricsNamespace, o.logger)
	}

	client := anchor.New(anchor.Config{
		BaseURL: o.baseURL,
		Timeout: o.timeout,
	}, o.logger)
	if collector != nil {
		client = client.WithCollector(collector)
	}

	registry := tools.NewDefaultRegistry(o.logger)
	if err := tools.RegisterAll(registry, client); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	executor := tools.NewDefaultExecutor(registry, o.logger)
	if collector != nil {
		executor = executor.WithCollector(collector)
	}

	return agent.New(o.profile, registry, executor, o.logger)
}
