package config

// Stratafile represents the structure of the strata.yaml configuration file.
type Stratafile struct {
	Version       string   `yaml:"version"`
	Graph         string   `yaml:"graph"`
	Layout        string   `yaml:"layout"`
	TargetRuntime string   `yaml:"targetRuntime"`
	Entry         string   `yaml:"entry"`
	Tools         ToolsDTO `yaml:"tools"`
}

// ToolsDTO holds the command prefixes used to invoke the external tools.
type ToolsDTO struct {
	TSC []string `yaml:"tsc"`
	SWC []string `yaml:"swc"`
	Nx  []string `yaml:"nx"`
}
