package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/entrhq/daily/pkg/logging"
)

var registryLog = logging.NewLogger("tools")

// Registry holds tools by name and routes calls to them.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a registry holding the given tools.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("cannot register nil tool")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; exists {
		return fmt.Errorf("tool %q is already registered", t.Name())
	}
	r.tools[t.Name()] = t
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns every tool sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Dispatch runs a parsed call. An unknown tool name is not an error: the
// result says so, matching how operation failures are reported.
func (r *Registry) Dispatch(ctx context.Context, call *ToolCall) (string, map[string]interface{}, error) {
	if err := ValidateToolCall(call); err != nil {
		return "", nil, err
	}
	t, ok := r.Get(call.ToolName)
	if !ok {
		registryLog.Warnf("unknown tool requested: %s", call.ToolName)
		return fmt.Sprintf("Unknown tool: %s", call.ToolName), nil, nil
	}
	args := call.GetArgumentsXML()
	if fields, err := XMLToMap(args); err == nil {
		registryLog.Debugf("dispatching %s with arguments [%s]", call.ToolName, strings.Join(argumentNames(fields), ", "))
	}
	return t.Execute(ctx, args)
}

// DispatchText parses the first tool call in text and dispatches it.
func (r *Registry) DispatchText(ctx context.Context, text string) (string, map[string]interface{}, error) {
	call, _, err := ParseToolCall(text)
	if err != nil {
		return "", nil, err
	}
	return r.Dispatch(ctx, call)
}

// argumentNames lists the argument keys in sorted order, without values,
// so entry text never reaches the log.
func argumentNames(fields map[string]interface{}) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
