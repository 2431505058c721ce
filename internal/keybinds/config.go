package keybinds

import (
	"fmt"
	"strings"
)

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ContextGlobal, "ctrl+c", ActionQuit)

	r.Register(ContextMain, "enter", ActionFetch)
	r.Register(ContextMain, "tab", ActionToggleMethod)
	r.Register(ContextMain, "down", ActionPresetNext)
	r.Register(ContextMain, "up", ActionPresetPrev)
	r.Register(ContextMain, "pgup", ActionPageUp)
	r.Register(ContextMain, "pgdown", ActionPageDown)
	r.Register(ContextMain, "ctrl+y", ActionCopyBody)
	r.Register(ContextMain, "ctrl+r", ActionToggleHistory)

	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionHistoryUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionHistoryDown)
	r.Register(ContextHistory, "enter", ActionHistoryExecute)
	r.RegisterMultiple(ContextHistory, []string{"d", "delete"}, ActionHistoryDelete)
	r.Register(ContextHistory, "ctrl+l", ActionHistoryClear)
	r.RegisterMultiple(ContextHistory, []string{"esc", "ctrl+r"}, ActionHistoryClose)

	r.RegisterMultiple(ContextNotice, []string{"esc", "enter"}, ActionDismissNotice)

	return r
}

// ParseKeys splits a comma separated key list, dropping blanks
func ParseKeys(spec string) []string {
	var keys []string
	for _, key := range strings.Split(spec, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ApplyOverrides rebinds actions from a map of action name to comma
// separated keys. Each listed action loses its default keys in its context.
func ApplyOverrides(registry *Registry, overrides map[string]string) error {
	for name, spec := range overrides {
		info, ok := GetActionInfo(Action(name))
		if !ok {
			return fmt.Errorf("unknown keybinding action %q", name)
		}

		keys := ParseKeys(spec)
		if len(keys) == 0 {
			return fmt.Errorf("no keys given for action %q", name)
		}
		for _, key := range keys {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("action %q: %w", name, err)
			}
		}

		registry.Unbind(info.Context, info.Action)
		registry.RegisterMultiple(info.Context, keys, info.Action)
	}
	return nil
}

// Load builds the default registry, applies overrides and validates the result
func Load(overrides map[string]string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if err := ApplyOverrides(registry, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	result := NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybindings:\n%s", result.String())
	}
	return registry, nil
}
