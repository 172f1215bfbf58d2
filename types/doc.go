// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package types provides the shared type contracts for anchorflow.

types is the lowest-level public package and depends on no internal
packages. It defines what the anchor client, the tools layer, and the
agent layer exchange:

  - Error / ErrorCode: the single structured client error kind, carrying a
    message, an optional HTTP status code, the raw response payload, and a
    retryable hint
  - ToolSchema: tool definition (name, description, JSON Schema parameters)
  - ToolCall: a tool invocation request from the orchestrator
  - ToolResult: a tool execution result

Helpers: IsRetryable and GetErrorCode inspect errors without callers
needing a type assertion.
*/
package types
