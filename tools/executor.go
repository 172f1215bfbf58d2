package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/anchorflow/internal/metrics"
	"github.com/BaSui01/anchorflow/types"
)

// Executor runs tool calls against a Registry.
type Executor interface {
	Execute(ctx context.Context, calls []types.ToolCall) []types.ToolResult
	ExecuteOne(ctx context.Context, call types.ToolCall) types.ToolResult
}

// DefaultExecutor executes calls with per-tool timeout and rate limit
// enforcement. Failures are reported inside the ToolResult, never as a
// panic or a lost goroutine.
type DefaultExecutor struct {
	registry  Registry
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewDefaultExecutor creates an executor over the given registry. A nil
// logger is replaced with a noop one.
func NewDefaultExecutor(registry Registry, logger *zap.Logger) *DefaultExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultExecutor{
		registry: registry,
		logger:   logger,
	}
}

// WithCollector attaches a metrics collector and returns the executor.
func (e *DefaultExecutor) WithCollector(collector *metrics.Collector) *DefaultExecutor {
	e.collector = collector
	return e
}

// Execute runs all calls concurrently and returns results in call order.
// Individual failures stay inside their ToolResult and never abort the
// batch.
func (e *DefaultExecutor) Execute(ctx context.Context, calls []types.ToolCall) []types.ToolResult {
	results := make([]types.ToolResult, len(calls))

	var g errgroup.Group
	for i, call := range calls {
		g.Go(func() error {
			results[i] = e.ExecuteOne(ctx, call)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ExecuteOne runs a single call: registry lookup, rate limit check,
// argument validation, then the tool function under its timeout.
func (e *DefaultExecutor) ExecuteOne(ctx context.Context, call types.ToolCall) types.ToolResult {
	if call.ID == "" {
		call.ID = "call-" + uuid.NewString()
	}

	start := time.Now()
	result := types.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
	}

	fn, meta, err := e.registry.Get(call.Name)
	if err != nil {
		result.Error = fmt.Sprintf("tool not found: %s", err.Error())
		result.Duration = time.Since(start)
		e.logger.Error("tool not found", zap.String("name", call.Name), zap.Error(err))
		e.record(call.Name, "error", result.Duration)
		return result
	}

	if reg, ok := e.registry.(*DefaultRegistry); ok {
		if err := reg.allow(call.Name); err != nil {
			result.Error = err.Error()
			result.Duration = time.Since(start)
			e.logger.Warn("rate limit exceeded", zap.String("name", call.Name))
			e.record(call.Name, "error", result.Duration)
			return result
		}
	}

	if len(call.Arguments) > 0 {
		if !json.Valid(call.Arguments) {
			result.Error = "invalid arguments: not valid JSON"
			result.Duration = time.Since(start)
			e.logger.Error("invalid tool arguments", zap.String("name", call.Name))
			e.record(call.Name, "error", result.Duration)
			return result
		}
	}

	execCtx, cancel := context.WithTimeout(ctx, meta.Timeout)
	defer cancel()

	// Buffered so the goroutine can exit even when nobody receives after
	// a timeout.
	done := make(chan struct {
		res json.RawMessage
		err error
	}, 1)

	go func() {
		res, err := fn(execCtx, call.Arguments)
		select {
		case done <- struct {
			res json.RawMessage
			err error
		}{res, err}:
		case <-execCtx.Done():
		}
	}()

	select {
	case d := <-done:
		result.Duration = time.Since(start)
		if d.err != nil {
			result.Error = d.err.Error()
			e.logger.Error("tool execution failed",
				zap.String("name", call.Name),
				zap.Error(d.err),
				zap.Duration("duration", result.Duration))
			e.record(call.Name, "error", result.Duration)
		} else {
			result.Result = d.res
			e.logger.Info("tool executed",
				zap.String("name", call.Name),
				zap.Duration("duration", result.Duration))
			e.record(call.Name, "success", result.Duration)
		}

	case <-execCtx.Done():
		result.Duration = time.Since(start)
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Sprintf("execution timeout after %s", meta.Timeout)
			e.logger.Error("tool execution timeout",
				zap.String("name", call.Name),
				zap.Duration("timeout", meta.Timeout))
		} else {
			result.Error = fmt.Sprintf("execution cancelled: %v", execCtx.Err())
			e.logger.Warn("tool execution cancelled",
				zap.String("name", call.Name))
		}
		e.record(call.Name, "error", result.Duration)
	}

	return result
}

func (e *DefaultExecutor) record(tool, outcome string, duration time.Duration) {
	if e.collector == nil {
		return
	}
	e.collector.RecordToolExecution(tool, outcome, duration)
}
