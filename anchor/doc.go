// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package anchor implements the HTTP client for the AutoAnchor DevOps
automation backend.

# Overview

The backend exposes a fixed set of automation endpoints: project analysis,
Dockerfile and Jenkinsfile generation, Terraform infrastructure setup, AWS
credential lookup, GitHub webhook setup, the Acube interactive CI/CD
planner, and a few file utilities. Client wraps each endpoint in one method
that builds the request, issues exactly one HTTP call, and funnels the raw
response through Normalize.

Normalize is the one piece of shared decision logic: it reconciles the
backend's historical response conventions ({"status": "success"/"error"},
bare {"success": bool} legacy bodies, FastAPI validation errors, plain-text
error pages) into a uniform result. Success yields the decoded JSON payload
as-is; every failure is a *types.Error carrying a message, the HTTP status
code when one was received, and the raw payload for diagnostics.

# Usage

	client := anchor.New(anchor.Config{BaseURL: "http://127.0.0.1:8084"}, logger)
	result, err := client.Analyze(ctx, "/srv/app", "/usr/bin/python3")
	if err != nil {
		var cerr *types.Error
		if errors.As(err, &cerr) && cerr.Retryable {
			// the orchestrator may retry
		}
	}

The client is stateless with respect to calls and safe for concurrent use.
It performs no retries, no caching, and no batching; those decisions belong
to the orchestrator.
*/
package anchor
