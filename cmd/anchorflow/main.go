package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/anchorflow/agent"
	"github.com/BaSui01/anchorflow/anchor"
	"github.com/BaSui01/anchorflow/config"
	"github.com/BaSui01/anchorflow/internal/metrics"
	"github.com/BaSui01/anchorflow/internal/telemetry"
	"github.com/BaSui01/anchorflow/tools"
	"github.com/BaSui01/anchorflow/tools/openapi"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load .env if present. Production deployments use real env vars.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "call":
		err = runCall(os.Args[2:])
	case "tools":
		err = runTools(os.Args[2:])
	case "agent":
		err = runAgent(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs after configuration is resolved.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	providers *telemetry.Providers
	registry  tools.Registry
	agent     *agent.Agent
}

func buildApp(configPath string) (*app, error) {
	loader := config.NewLoader()
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := initLogger(cfg.Log)

	logger.Debug("starting anchorflow",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	providers, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace, logger)
	}

	client := anchor.New(anchor.Config{
		BaseURL: cfg.Anchor.BaseURL,
		Timeout: cfg.Anchor.Timeout,
	}, logger)
	if collector != nil {
		client = client.WithCollector(collector)
	}

	registry := tools.NewDefaultRegistry(logger)
	if err := tools.RegisterAll(registry, client); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	executor := tools.NewDefaultExecutor(registry, logger)
	if collector != nil {
		executor = executor.WithCollector(collector)
	}

	orchestrator, err := agent.New(agentProfile(cfg), registry, executor, logger)
	if err != nil {
		return nil, fmt.Errorf("build agent: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
		registry:  registry,
		agent:     orchestrator,
	}, nil
}

// agentProfile merges configuration overrides onto the stock orchestrator.
// An empty instruction keeps the built-in one.
func agentProfile(cfg *config.Config) agent.Config {
	profile := agent.DefaultOrchestrator()
	if cfg.Agent.Name != "" {
		profile.Name = cfg.Agent.Name
	}
	if cfg.Agent.Model != "" {
		profile.Model = cfg.Agent.Model
	}
	if cfg.Agent.Instruction != "" {
		profile.Instruction = cfg.Agent.Instruction
	}
	profile.Temperature = float32(cfg.Agent.Temperature)
	if cfg.Agent.Tools != nil {
		profile.Tools = cfg.Agent.Tools
	}
	return profile
}

func (a *app) close() {
	if a.providers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.providers.Shutdown(ctx); err != nil {
			a.logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func runCall(args []string) error {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	timeout := fs.Duration("timeout", 0, "Overall deadline for the call (0 relies on per-tool timeouts)")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: anchorflow call [options] <tool> [json-arguments]")
	}
	name := rest[0]
	rawArgs := "{}"
	if len(rest) > 1 {
		rawArgs = rest[1]
	}
	if !json.Valid([]byte(rawArgs)) {
		return fmt.Errorf("arguments must be valid JSON, got: %s", rawArgs)
	}

	a, err := buildApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	result := a.agent.Call(ctx, name, json.RawMessage(rawArgs))
	if result.IsError() {
		return fmt.Errorf("tool %s failed: %s", name, result.Error)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result.Result, "", "  "); err != nil {
		fmt.Println(string(result.Result))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func runTools(args []string) error {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	asJSON := fs.Bool("json", false, "Print tool schemas as JSON")
	fs.Parse(args)

	a, err := buildApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()

	schemas := a.registry.List()

	if *asJSON {
		data, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return fmt.Errorf("encode schemas: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Registered tools (%d). Tools marked * are exposed to the %s agent.\n\n",
		len(schemas), a.agent.Config().Name)
	for _, schema := range schemas {
		marker := " "
		if a.agent.Allowed(schema.Name) {
			marker = "*"
		}
		fmt.Printf("%s %-24s %s\n", marker, schema.Name, schema.Description)
	}
	return nil
}

func runAgent(args []string) error {
	fs := flag.NewFlagSet("agent", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	a, err := buildApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()

	profile := a.agent.Config()
	fmt.Printf("ID:          %s\n", profile.ID)
	fmt.Printf("Name:        %s\n", profile.Name)
	fmt.Printf("Model:       %s\n", profile.Model)
	fmt.Printf("Temperature: %.2f\n", profile.Temperature)
	fmt.Printf("Backend:     %s\n", a.cfg.Anchor.BaseURL)
	fmt.Printf("Instruction: %s\n", profile.Instruction)
	fmt.Println("Tools:")
	for _, schema := range a.agent.ToolSchemas() {
		fmt.Printf("  - %s\n", schema.Name)
	}
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	showUnbound := fs.Bool("unbound", false, "Also list backend operations no tool is bound to")
	fs.Parse(args)

	a, err := buildApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := openapi.NewGenerator(openapi.Config{Timeout: a.cfg.Anchor.Timeout}, a.logger)
	specURL := strings.TrimSuffix(a.cfg.Anchor.BaseURL, "/") + "/openapi.json"
	spec, err := gen.LoadSpec(ctx, specURL)
	if err != nil {
		return fmt.Errorf("load backend spec: %w", err)
	}

	endpoints := tools.BoundEndpoints()
	drifts := openapi.VerifyBindings(spec, endpoints)

	fmt.Printf("Backend: %s (%s %s)\n", a.cfg.Anchor.BaseURL, spec.Info.Title, spec.Info.Version)
	if len(drifts) == 0 {
		fmt.Printf("All %d tool bindings match the deployment.\n", len(endpoints))
	} else {
		fmt.Printf("%d of %d tool bindings drifted:\n", len(drifts), len(endpoints))
		for _, d := range drifts {
			fmt.Printf("  %s\n", d)
		}
	}

	if *showUnbound {
		unbound := openapi.UnboundOperations(spec, endpoints)
		if len(unbound) > 0 {
			fmt.Println("Operations without a bound tool:")
			for _, op := range unbound {
				fmt.Printf("  %s\n", op)
			}
		}
	}

	if len(drifts) > 0 {
		return fmt.Errorf("%d binding(s) drifted", len(drifts))
	}
	return nil
}

func printVersion() {
	fmt.Printf("AnchorFlow %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`AnchorFlow - CLI for the AutoAnchor automation backend

Usage:
  anchorflow <command> [options]

Commands:
  call      Invoke a backend tool by name
  tools     List registered tools
  agent     Show the resolved orchestrator profile
  verify    Check tool bindings against the backend's OpenAPI spec
  version   Show version information
  help      Show this help message

Common options:
  --config <path>   Path to configuration file (YAML)

Options for 'call':
  --timeout <dur>   Overall deadline for the call (default: per-tool timeouts)

Options for 'verify':
  --unbound         Also list backend operations no tool is bound to

Examples:
  anchorflow call get_creds
  anchorflow call analyzer '{"folder_path": "/srv/app"}'
  anchorflow call --timeout 10m infra '{"work_dir": "deploy/", "instance_size": "t2.micro"}'
  anchorflow tools --json
  anchorflow verify --unbound
  anchorflow agent --config /etc/anchorflow/config.yaml`)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Format == "console",
		DisableCaller:     !cfg.EnableCaller,
		DisableStacktrace: !cfg.EnableStacktrace,
		Encoding:          "json",
		EncoderConfig:     encoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	}

	logger, err := zapConfig.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
