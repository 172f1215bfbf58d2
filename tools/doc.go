// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package tools turns the anchor client's backend calls into registered,
schema-described tools an LLM orchestrator can select and invoke.

Each tool is a Func paired with Metadata: a JSON Schema for its arguments,
an execution timeout, and an optional rate limit. DefaultRegistry stores
tools by name and enforces per-tool rate limits; DefaultExecutor runs
calls with timeout control and records outcomes. RegisterAll wires up the
full backend tool set in one step:

	registry := tools.NewDefaultRegistry(logger)
	if err := tools.RegisterAll(registry, client); err != nil {
		return err
	}
	executor := tools.NewDefaultExecutor(registry, logger)

Tool results carry either a raw JSON payload or an error string, never
both; the orchestrator feeds them back to the model verbatim.
*/
package tools
