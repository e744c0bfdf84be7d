package command

import (
	"fmt"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/goliatone/go-polls/pkg/types"
)

// ProfileDefaults are applied when a profile row is first created.
type ProfileDefaults struct {
	Age    int
	Region string
}

// ResolveProfileDefaults layers host overrides (keys "age" and "region") on
// top of the built-in defaults.
func ResolveProfileDefaults(overrides map[string]any) (ProfileDefaults, error) {
	system := opts.NewScope("system", opts.ScopePrioritySystem, opts.WithScopeLabel("Built-in"))
	layers := []opts.Layer[map[string]any]{
		opts.NewLayer(system, map[string]any{
			"age":    types.DefaultProfileAge,
			"region": types.DefaultProfileRegion,
		}, opts.WithSnapshotID[map[string]any](system.Name)),
	}
	if len(overrides) > 0 {
		host := opts.NewScope("host", opts.ScopePriorityTenant, opts.WithScopeLabel("Host"))
		layers = append(layers, opts.NewLayer(host, cloneMap(overrides),
			opts.WithSnapshotID[map[string]any](host.Name)))
	}
	stack, err := opts.NewStack(layers...)
	if err != nil {
		return ProfileDefaults{}, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return ProfileDefaults{}, err
	}

	defaults := ProfileDefaults{Age: types.DefaultProfileAge, Region: types.DefaultProfileRegion}
	if raw, ok := merged.Value["age"]; ok {
		age, err := intValue(raw)
		if err != nil {
			return ProfileDefaults{}, err
		}
		defaults.Age = age
	}
	if raw, ok := merged.Value["region"].(string); ok && strings.TrimSpace(raw) != "" {
		defaults.Region = strings.TrimSpace(raw)
	}
	return defaults, nil
}

func intValue(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("go-polls: profile default age must be numeric, got %T", raw)
	}
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
