// Copyright (c) AnchorFlow Authors.
// Licensed under the MIT License.

/*
Package metrics provides Prometheus metric collection for backend API
calls and tool executions.

The Collector registers its vectors through promauto against the default
registry, namespaced so several collectors can coexist in tests. Two
metric families are exposed:

  - API metrics: request totals and durations by method/path, status codes
    bucketed into 2xx/3xx/4xx/5xx (0, meaning no response, maps to
    "unknown"), plus failure totals by error code.
  - Tool metrics: execution totals by tool/outcome and duration histograms
    tuned for long-running pipeline operations.
*/
package metrics
