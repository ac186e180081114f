package config

import (
	"fmt"
	"sort"
)

// Validate checks the referential integrity of the document: every server id
// referenced by an environment's enable list or by one of its presets must
// exist in Servers, and enable lists must not contain duplicates. A broken
// reference is an error, never silently dropped.
func (c *Config) Validate() error {
	envIDs := make([]string, 0, len(c.Environments))
	for id := range c.Environments {
		envIDs = append(envIDs, id)
	}
	sort.Strings(envIDs)

	for _, envID := range envIDs {
		env := c.Environments[envID]
		seen := make(map[string]bool, len(env.Enable))
		for _, id := range env.Enable {
			if _, ok := c.Servers[id]; !ok {
				return fmt.Errorf("environment '%s' enables %w '%s'", envID, ErrUnknownServer, id)
			}
			if seen[id] {
				return fmt.Errorf("environment '%s' enables server '%s' twice", envID, id)
			}
			seen[id] = true
		}
		for name, servers := range env.Presets {
			for _, id := range servers {
				if _, ok := c.Servers[id]; !ok {
					return fmt.Errorf("preset '%s' in environment '%s' references %w '%s'", name, envID, ErrUnknownServer, id)
				}
			}
		}
	}
	return nil
}

// Toggle flips membership of serverID in the environment's enable list:
// enabled servers are disabled and vice versa. The model is left unchanged
// when either identifier is unknown.
func (c *Config) Toggle(envID, serverID string) error {
	env, ok := c.Environments[envID]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	if _, ok := c.Servers[serverID]; !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownServer, serverID)
	}

	for i, id := range env.Enable {
		if id == serverID {
			env.Enable = append(env.Enable[:i], env.Enable[i+1:]...)
			return nil
		}
	}
	env.Enable = append(env.Enable, serverID)
	return nil
}

// SavePreset stores a copy of serverIDs under name in the environment's
// preset map. Saving over an existing name overwrites it. Every id must be a
// known server; on error nothing is stored.
func (c *Config) SavePreset(envID, name string, serverIDs []string) error {
	env, ok := c.Environments[envID]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	for _, id := range serverIDs {
		if _, ok := c.Servers[id]; !ok {
			return fmt.Errorf("preset '%s' references %w: '%s'", name, ErrUnknownServer, id)
		}
	}

	if env.Presets == nil {
		env.Presets = make(map[string][]string)
	}
	env.Presets[name] = append([]string(nil), serverIDs...)
	return nil
}

// ApplyPreset replaces the environment's enable list wholesale with a copy of
// the named preset. Apply is a total replacement, not a merge; the preset and
// the enable list stay decoupled afterwards.
func (c *Config) ApplyPreset(envID, name string) error {
	env, ok := c.Environments[envID]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	servers, ok := env.Presets[name]
	if !ok {
		return fmt.Errorf("%w: '%s' in environment '%s'", ErrPresetNotFound, name, envID)
	}
	env.Enable = append([]string(nil), servers...)
	return nil
}

// DeletePreset removes the named preset. The current enable list is untouched
// even if it was produced by applying this preset.
func (c *Config) DeletePreset(envID, name string) error {
	env, ok := c.Environments[envID]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	if _, ok := env.Presets[name]; !ok {
		return fmt.Errorf("%w: '%s' in environment '%s'", ErrPresetNotFound, name, envID)
	}
	delete(env.Presets, name)
	return nil
}

// Enabled returns a copy of the environment's enable list in insertion order.
func (c *Config) Enabled(envID string) ([]string, error) {
	env, ok := c.Environments[envID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	return append([]string(nil), env.Enable...), nil
}

// IsEnabled reports whether serverID is in the environment's enable list.
// Unknown environments report false.
func (c *Config) IsEnabled(envID, serverID string) bool {
	env, ok := c.Environments[envID]
	if !ok {
		return false
	}
	for _, id := range env.Enable {
		if id == serverID {
			return true
		}
	}
	return false
}

// ServerIDs returns all server identifiers, sorted.
func (c *Config) ServerIDs() []string {
	ids := make([]string, 0, len(c.Servers))
	for id := range c.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnvironmentIDs returns all environment identifiers, sorted.
func (c *Config) EnvironmentIDs() []string {
	ids := make([]string, 0, len(c.Environments))
	for id := range c.Environments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PresetNames returns the environment's preset names, sorted.
func (c *Config) PresetNames(envID string) ([]string, error) {
	env, ok := c.Environments[envID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownEnvironment, envID)
	}
	names := make([]string, 0, len(env.Presets))
	for name := range env.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
