package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/types"
)

// Spec is a parsed OpenAPI 3.x document, reduced to the parts needed for
// tool generation.
type Spec struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Servers    []Server            `json:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths"`
	Components *Components         `json:"components,omitempty"`
}

// Info contains API metadata.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Components holds reusable schema definitions.
type Components struct {
	Schemas map[string]JSONSchema `json:"schemas,omitempty"`
}

// PathItem represents the operations on a path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
	Patch  *Operation `json:"patch,omitempty"`
}

// Operation represents an API operation.
type Operation struct {
	OperationID string       `json:"operationId,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
}

// Parameter represents an operation parameter.
type Parameter struct {
	Name        string      `json:"name"`
	In          string      `json:"in"` // query, path, header, cookie
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Schema      *JSONSchema `json:"schema,omitempty"`
}

// RequestBody represents a request body.
type RequestBody struct {
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType represents one content type of a request body.
type MediaType struct {
	Schema *JSONSchema `json:"schema,omitempty"`
}

// JSONSchema is the subset of JSON Schema the generator understands.
// A Ref pointing into #/components/schemas is resolved one level deep.
type JSONSchema struct {
	Ref         string                `json:"$ref,omitempty"`
	Type        string                `json:"type,omitempty"`
	Title       string                `json:"title,omitempty"`
	Description string                `json:"description,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty"`
	Required    []string              `json:"required,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty"`
	Enum        []any                 `json:"enum,omitempty"`
	Default     any                   `json:"default,omitempty"`
}

// GeneratedTool is a tool derived from one spec operation.
type GeneratedTool struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Schema      types.ToolSchema `json:"schema"`
	Method      string           `json:"method"`
	Path        string           `json:"path"`
	BaseURL     string           `json:"base_url"`
	Parameters  []Parameter      `json:"parameters"`
	RequestBody *RequestBody     `json:"request_body,omitempty"`
}

// Generator loads OpenAPI documents and turns their operations into tool
// schemas. Loaded documents are cached per source URL.
type Generator struct {
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*Spec
	mu         sync.RWMutex
}

// Config configures the generator.
type Config struct {
	Timeout time.Duration
}

// NewGenerator creates an OpenAPI tool generator. A nil logger is replaced
// with a noop one.
func NewGenerator(config Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Generator{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "openapi_generator")),
		cache:      make(map[string]*Spec),
	}
}

// LoadSpec fetches and parses an OpenAPI document. FastAPI backends serve
// theirs at <base>/openapi.json.
func (g *Generator) LoadSpec(ctx context.Context, source string) (*Spec, error) {
	g.mu.RLock()
	if spec, ok := g.cache[source]; ok {
		g.mu.RUnlock()
		return spec, nil
	}
	g.mu.RUnlock()

	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return nil, fmt.Errorf("spec source must be an http(s) URL, got %q", source)
	}

	data, err := g.fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec: %w", err)
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse spec: %w", err)
	}

	g.mu.Lock()
	g.cache[source] = &spec
	g.mu.Unlock()

	g.logger.Info("loaded OpenAPI spec",
		zap.String("title", spec.Info.Title),
		zap.String("version", spec.Info.Version),
		zap.Int("paths", len(spec.Paths)),
	)

	return &spec, nil
}

func (g *Generator) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// GenerateOptions configures tool generation.
type GenerateOptions struct {
	BaseURL     string   // overrides the spec's first server URL
	IncludeTags []string // keep only operations carrying one of these tags
	ExcludeTags []string // drop operations carrying one of these tags
	Prefix      string   // prepended to every generated tool name
}

// GenerateTools converts every operation in the spec into a GeneratedTool.
// Output is sorted by name so repeated runs are stable.
func (g *Generator) GenerateTools(spec *Spec, opts GenerateOptions) ([]*GeneratedTool, error) {
	var generated []*GeneratedTool
	baseURL := ""
	if len(spec.Servers) > 0 {
		baseURL = spec.Servers[0].URL
	}
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}

	for path, pathItem := range spec.Paths {
		for method, op := range pathItem.operations() {
			if op == nil {
				continue
			}

			if len(opts.IncludeTags) > 0 && !hasAnyTag(op.Tags, opts.IncludeTags) {
				continue
			}
			if len(opts.ExcludeTags) > 0 && hasAnyTag(op.Tags, opts.ExcludeTags) {
				continue
			}

			generated = append(generated, g.operationToTool(spec, path, method, op, baseURL, opts.Prefix))
		}
	}

	sort.Slice(generated, func(i, j int) bool {
		return generated[i].Name < generated[j].Name
	})

	g.logger.Info("generated tools", zap.Int("count", len(generated)))
	return generated, nil
}

func (p PathItem) operations() map[string]*Operation {
	return map[string]*Operation{
		http.MethodGet:    p.Get,
		http.MethodPost:   p.Post,
		http.MethodPut:    p.Put,
		http.MethodDelete: p.Delete,
		http.MethodPatch:  p.Patch,
	}
}

func (g *Generator) operationToTool(spec *Spec, path, method string, op *Operation, baseURL, prefix string) *GeneratedTool {
	name := op.OperationID
	if name == "" {
		name = fmt.Sprintf("%s_%s", strings.ToLower(method), sanitizePath(path))
	}
	name = prefix + name

	description := op.Summary
	if description == "" {
		description = op.Description
	}
	if description == "" {
		description = fmt.Sprintf("%s %s", method, path)
	}

	properties := make(map[string]JSONSchema)
	var required []string

	for _, param := range op.Parameters {
		prop := JSONSchema{Description: param.Description}
		if param.Schema != nil {
			resolved := spec.resolve(*param.Schema)
			prop.Type = resolved.Type
			prop.Enum = resolved.Enum
			prop.Default = resolved.Default
			if prop.Description == "" {
				prop.Description = resolved.Description
			}
		}
		properties[param.Name] = prop
		if param.Required {
			required = append(required, param.Name)
		}
	}

	if op.RequestBody != nil {
		if content, ok := op.RequestBody.Content["application/json"]; ok && content.Schema != nil {
			resolved := spec.resolve(*content.Schema)
			// Flatten the body object into top-level properties, the way
			// the statically bound tools accept their arguments.
			if resolved.Type == "object" && len(resolved.Properties) > 0 {
				for propName, propSchema := range resolved.Properties {
					properties[propName] = spec.resolve(propSchema)
				}
				required = append(required, resolved.Required...)
			} else {
				properties["body"] = resolved
				if op.RequestBody.Required {
					required = append(required, "body")
				}
			}
		}
	}

	sort.Strings(required)

	paramsSchema := JSONSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
	paramsJSON, _ := json.Marshal(paramsSchema)

	return &GeneratedTool{
		Name:        name,
		Description: description,
		Schema: types.ToolSchema{
			Name:        name,
			Description: description,
			Parameters:  paramsJSON,
		},
		Method:      method,
		Path:        path,
		BaseURL:     baseURL,
		Parameters:  op.Parameters,
		RequestBody: op.RequestBody,
	}
}

// resolve follows a single $ref into #/components/schemas. Unknown or
// nested refs return the schema unchanged.
func (s *Spec) resolve(schema JSONSchema) JSONSchema {
	if schema.Ref == "" {
		return schema
	}
	if s.Components == nil {
		return schema
	}
	name := strings.TrimPrefix(schema.Ref, "#/components/schemas/")
	if resolved, ok := s.Components.Schemas[name]; ok {
		return resolved
	}
	return schema
}

func hasAnyTag(tags, targets []string) bool {
	tagSet := make(map[string]bool)
	for _, t := range tags {
		tagSet[t] = true
	}
	for _, t := range targets {
		if tagSet[t] {
			return true
		}
	}
	return false
}

func sanitizePath(path string) string {
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "{", "")
	path = strings.ReplaceAll(path, "}", "")
	path = strings.Trim(path, "_")
	return path
}
