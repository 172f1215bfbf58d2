// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

// Package testutil provides shared test helpers: context builders tied to
// the test lifecycle, JSON assertion shortcuts and a configurable fake of
// the automation backend for end-to-end tests without a real deployment.
//
// The fixtures subpackage carries canned backend payloads in the envelope
// format the real service emits.
package testutil
