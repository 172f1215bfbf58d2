// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package agent binds a tool registry to an orchestrator profile: which
model drives the conversation, what instruction it runs under, and which
backend tools it may call.

The package does not talk to any LLM itself. It produces the filtered
tool schemas a caller hands to their model runtime, and it executes the
tool calls the model decides on, refusing anything outside the agent's
whitelist. DefaultOrchestrator returns the stock DevOps profile covering
analysis, generation, credentials, and infrastructure.
*/
package agent
