// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

// Package openapi loads the automation backend's OpenAPI document and
// works with it two ways: generating tool schemas for operations the
// static tool belt does not cover, and verifying that the statically
// bound routes still exist in a live deployment.
//
// FastAPI serves its document at <base>/openapi.json:
//
//	gen := openapi.NewGenerator(openapi.Config{}, logger)
//	spec, err := gen.LoadSpec(ctx, baseURL+"/openapi.json")
//	drifts := openapi.VerifyBindings(spec, tools.BoundEndpoints())
//
// Schema $ref pointers are resolved one level into #/components/schemas,
// which covers the request body models FastAPI generates.
package openapi
