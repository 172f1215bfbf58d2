// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

// Package telemetry wires up the OpenTelemetry SDK: a TracerProvider and
// MeterProvider exporting over OTLP gRPC, registered as the global
// providers. When telemetry is disabled no exporters are created and the
// globals stay noop, so the anchor client's spans cost nothing.
package telemetry
