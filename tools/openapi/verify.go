package openapi

import (
	"fmt"
	"sort"
	"strings"
)

// Endpoint ties a tool name to the backend route it invokes.
type Endpoint struct {
	Tool   string
	Method string
	Path   string
}

// Drift is a bound endpoint the live spec no longer agrees with.
type Drift struct {
	Endpoint Endpoint
	Reason   string
}

func (d Drift) String() string {
	return fmt.Sprintf("%s (%s %s): %s", d.Endpoint.Tool, d.Endpoint.Method, d.Endpoint.Path, d.Reason)
}

// VerifyBindings checks every bound endpoint against the spec and reports
// routes the backend no longer serves. An empty result means the static
// bindings match the deployment.
func VerifyBindings(spec *Spec, endpoints []Endpoint) []Drift {
	var drifts []Drift

	for _, ep := range endpoints {
		item, ok := spec.Paths[ep.Path]
		if !ok {
			drifts = append(drifts, Drift{Endpoint: ep, Reason: "path not found in spec"})
			continue
		}
		if item.operations()[strings.ToUpper(ep.Method)] == nil {
			drifts = append(drifts, Drift{
				Endpoint: ep,
				Reason:   fmt.Sprintf("method %s not served on this path", ep.Method),
			})
		}
	}

	return drifts
}

// UnboundOperations lists spec operations no tool is bound to, as
// "METHOD path" strings sorted for stable output. Useful for spotting
// backend endpoints the tool belt does not cover yet.
func UnboundOperations(spec *Spec, endpoints []Endpoint) []string {
	bound := make(map[string]bool, len(endpoints))
	for _, ep := range endpoints {
		bound[strings.ToUpper(ep.Method)+" "+ep.Path] = true
	}

	var unbound []string
	for path, item := range spec.Paths {
		for method, op := range item.operations() {
			if op == nil {
				continue
			}
			key := method + " " + path
			if !bound[key] {
				unbound = append(unbound, key)
			}
		}
	}

	sort.Strings(unbound)
	return unbound
}
