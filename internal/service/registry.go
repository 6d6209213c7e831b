// Package service routes tool invocations to registered providers.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
)

// Provider is implemented by every tool group
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error)
}

// Registry manages provider registration and tool dispatch
type Registry struct {
	services sync.Map // service ID -> Provider
	tools    sync.Map // tool ID -> service ID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider and indexes its tools for dispatch
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	for _, tool := range def.Tools {
		if existing, loaded := r.tools.LoadOrStore(tool.ID, def.ID); loaded && existing != def.ID {
			return fmt.Errorf("tool %s already registered by service %s", tool.ID, existing)
		}
	}

	r.services.Store(def.ID, provider)
	return nil
}

// Unregister removes a provider and its tool index entries
func (r *Registry) Unregister(serviceID string) {
	val, ok := r.services.LoadAndDelete(serviceID)
	if !ok {
		return
	}
	for _, tool := range val.(Provider).Definition().Tools {
		r.tools.Delete(tool.ID)
	}
}

// Get retrieves a provider by service ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns registered service definitions, optionally filtered by
// category, sorted by ID for stable output
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute dispatches a tool invocation to the provider that registered it
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	serviceID, ok := r.tools.Load(toolID)
	if !ok {
		return types.Failure(fmt.Sprintf("tool not found: %s", toolID)), fmt.Errorf("tool not found: %s", toolID)
	}

	provider, ok := r.Get(serviceID.(string))
	if !ok {
		return types.Failure(fmt.Sprintf("service not found: %s", serviceID)), fmt.Errorf("service not found: %s", serviceID)
	}

	return provider.Execute(ctx, toolID, params)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}
