package config

import "sort"

// SchemeTUBAF is the built-in corporate palette of TU Bergakademie
// Freiberg, the default color scheme for new sessions.
const SchemeTUBAF = "TUBAF"

// builtinSchemes maps scheme names to ordered hex color lists. Built-in
// schemes cannot be overwritten or deleted.
var builtinSchemes = map[string][]string{
	SchemeTUBAF: {
		"#0069b4", // university blue
		"#8b7530", // geo
		"#007b99", // material
		"#b71e3f", // energy
		"#15882e", // environment
		"#e18409",
		"#95c11f",
		"#1e959a",
		"#cd1222",
		"#a1d9ef",
	},
	"Viridis": {
		"#440154", "#482878", "#3e4a89", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	},
	"Tab10": {
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	},
	"Dark2": {
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e",
		"#e6ab02", "#a6761d", "#666666",
	},
}

// Scheme looks up a color scheme by name, user-defined schemes first.
// The missing-scheme case is the caller's to handle.
func (c *Config) Scheme(name string) ([]string, bool) {
	if colors, ok := c.userSchemes[name]; ok {
		return colors, true
	}
	colors, ok := builtinSchemes[name]
	return colors, ok
}

// SchemeNames returns all scheme names, built-ins first, sorted within
// each section.
func (c *Config) SchemeNames() []string {
	var builtin, user []string
	for name := range builtinSchemes {
		builtin = append(builtin, name)
	}
	for name := range c.userSchemes {
		if _, shadowed := builtinSchemes[name]; !shadowed {
			user = append(user, name)
		}
	}
	sort.Strings(builtin)
	sort.Strings(user)
	return append(builtin, user...)
}

// SetScheme stores a user-defined color scheme. Built-in names are
// rejected.
func (c *Config) SetScheme(name string, colors []string) bool {
	if _, ok := builtinSchemes[name]; ok {
		return false
	}
	c.userSchemes[name] = colors
	return true
}

// DeleteScheme removes a user-defined scheme. Built-ins cannot be deleted.
func (c *Config) DeleteScheme(name string) bool {
	if _, ok := c.userSchemes[name]; !ok {
		return false
	}
	delete(c.userSchemes, name)
	return true
}
