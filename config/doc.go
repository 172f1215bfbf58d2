// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

// Package config loads anchorflow configuration from layered sources.
//
// Resolution order is defaults, then an optional YAML file, then
// environment variables prefixed with ANCHORFLOW (for example
// ANCHORFLOW_ANCHOR_BASE_URL or ANCHORFLOW_LOG_LEVEL). Use the Loader
// builder to customize the file path, the prefix or to attach extra
// validators:
//
//	cfg, err := config.NewLoader().
//		WithConfigPath("anchorflow.yaml").
//		Load()
//
// Call Config.Validate before wiring the loaded values into clients.
package config
