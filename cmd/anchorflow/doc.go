// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package main provides the anchorflow command line entry point.

cmd/anchorflow wraps the AutoAnchor automation backend's HTTP endpoints
as a tool belt. It loads layered configuration (defaults, YAML file,
ANCHORFLOW_* environment variables plus an optional .env file), builds
the anchor client, registers every backend tool and binds them to the
orchestrator agent profile.

Subcommands:

  - call     invoke one tool by name with JSON arguments and print the
    normalized result
  - tools    list registered tools, optionally as JSON schemas
  - agent    show the resolved orchestrator profile
  - verify   compare tool bindings against the backend's OpenAPI spec
  - version  print Version, BuildTime and GitCommit (set via ldflags)

Structured logs go through zap. Prometheus metric collection and
OpenTelemetry export are wired in when enabled in the configuration.
*/
package main
