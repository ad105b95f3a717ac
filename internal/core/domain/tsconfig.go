package domain

// PathAlias is one module-resolution alias and its candidate locations.
type PathAlias struct {
	Pattern   string
	Locations []string
}

// TSConfig is the resolved module-resolution view of a project's tsconfig.json.
type TSConfig struct {
	// Path is the absolute path of the tsconfig.json that was loaded.
	Path string
	// BaseURL is the absolute baseUrl, empty when none is configured.
	BaseURL string
	// Paths are the declared aliases in declaration order.
	Paths []PathAlias
	// PathsBasePath is the directory of the config file that declared Paths.
	PathsBasePath string
}

// PathMappings is an alias table consumable by the transpiler.
type PathMappings struct {
	// BaseURL is relative to the source directory, "." when they coincide.
	BaseURL string
	Paths   []PathAlias
}

// Lookup returns the locations of an alias.
func (m *PathMappings) Lookup(pattern string) ([]string, bool) {
	for _, a := range m.Paths {
		if a.Pattern == pattern {
			return a.Locations, true
		}
	}
	return nil, false
}

// Set replaces or appends an alias.
func (m *PathMappings) Set(pattern string, locations ...string) {
	for i := range m.Paths {
		if m.Paths[i].Pattern == pattern {
			m.Paths[i].Locations = locations
			return
		}
	}
	m.Paths = append(m.Paths, PathAlias{Pattern: pattern, Locations: locations})
}
