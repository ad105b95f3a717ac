package domain

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string
}

// NewCommand builds a Command from a prefix such as ["npx", "tsc"] followed by arguments.
func NewCommand(prefix []string, args ...string) Command {
	argv := append(append([]string(nil), prefix[1:]...), args...)
	return Command{Name: prefix[0], Args: argv}
}

// Argv returns the full argument vector including the command name.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// TypecheckRequest describes a declaration-only type check rooted at an entry module.
type TypecheckRequest struct {
	EntryPath      string
	TSConfigPath   string
	RootDir        string
	DeclarationDir string
	ProjectDir     string
	ScratchDir     string
}

// TypecheckResult holds the diagnostics of a type check. No diagnostics means success.
type TypecheckResult struct {
	Diagnostics []Diagnostic
}

// TranspileRequest describes one transpiler invocation for a single module format.
type TranspileRequest struct {
	SourceDir     string
	OutDir        string
	ModuleType    string
	TargetRuntime string
	SourceMaps    bool
	Mappings      PathMappings
	ExcludePaths  []string
	ProjectDir    string
	ScratchDir    string
}
