package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectNotFound is returned when the requested project is not part of the project graph.
	ErrProjectNotFound = zerr.New("project not found in project graph")

	// ErrProjectNotInGraph is returned when a dependency edge points at a vertex the graph does not know.
	ErrProjectNotInGraph = zerr.New("unable to find dependency in project graph")

	// ErrTargetNotFound is returned when a requested target is not declared by a project.
	ErrTargetNotFound = zerr.New("target not found on project")

	// ErrDuplicateProject is returned when two graph vertices share the same id.
	ErrDuplicateProject = zerr.New("duplicate project in project graph")

	// ErrNoProjectsSpecified is returned when a command is invoked without any project.
	ErrNoProjectsSpecified = zerr.New("no projects specified")

	// ErrUnpackagableDependency is returned when an in-repo dependency can neither be published nor built.
	ErrUnpackagableDependency = zerr.New("dependency cannot be packaged")

	// ErrInvalidDistribution is returned when a distribution name is unknown.
	ErrInvalidDistribution = zerr.New("invalid distribution, expected one of internal, external, layer, lib, npm, app")

	// ErrDistributionNotSupported is returned when a command does not handle the requested distribution.
	ErrDistributionNotSupported = zerr.New("distribution is not supported by this command")

	// ErrLayerDistributionReserved is returned when the layer distribution is requested without an execution id.
	ErrLayerDistributionReserved = zerr.New("distribution 'layer' is reserved for nested invocations and requires an execution id")

	// ErrInvalidOutputLayout is returned when an output layout name is unknown.
	ErrInvalidOutputLayout = zerr.New("invalid output layout, expected 'esm' or 'dist'")

	// ErrMissingBaseURL is returned when the project's tsconfig has no baseUrl.
	ErrMissingBaseURL = zerr.New("tsconfig.json must define compilerOptions.baseUrl")

	// ErrBaseURLOutsideProject is returned when baseUrl is a strict ancestor of the project root.
	ErrBaseURLOutsideProject = zerr.New("tsconfig baseUrl must not be outside the project directory")

	// ErrBaseURLOutsideSource is returned when baseUrl is outside the configured source directory.
	ErrBaseURLOutsideSource = zerr.New("tsconfig baseUrl must not be outside the source directory")

	// ErrBaseURLNotFound is returned when the baseUrl directory does not exist.
	ErrBaseURLNotFound = zerr.New("tsconfig baseUrl does not exist")

	// ErrPathMappingOutsideSource is returned when a path alias points outside the source directory.
	ErrPathMappingOutsideSource = zerr.New("path mapping contains locations outside the source directory")

	// ErrTSConfigNotFound is returned when no tsconfig.json can be found for a project.
	ErrTSConfigNotFound = zerr.New("could not find tsconfig.json")

	// ErrTSConfigReadFailed is returned when a tsconfig file cannot be read.
	ErrTSConfigReadFailed = zerr.New("failed to read tsconfig")

	// ErrTSConfigParseFailed is returned when a tsconfig file cannot be parsed.
	ErrTSConfigParseFailed = zerr.New("failed to parse tsconfig")

	// ErrTSConfigExtendsCycle is returned when tsconfig extends chains loop.
	ErrTSConfigExtendsCycle = zerr.New("tsconfig extends chain contains a cycle")

	// ErrManifestNotFound is returned when a project has no package.json.
	ErrManifestNotFound = zerr.New("could not find package.json")

	// ErrManifestReadFailed is returned when a package.json cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package.json")

	// ErrManifestParseFailed is returned when a package.json cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package.json")

	// ErrManifestWriteFailed is returned when a package.json cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write package.json")

	// ErrInvalidManifestMain is returned when main does not point at the compiled entry.
	ErrInvalidManifestMain = zerr.New("package.json main must point at the compiled entry")

	// ErrMissingExports is returned when the npm distribution is used without an exports map.
	ErrMissingExports = zerr.New("package.json must declare exports for the npm distribution")

	// ErrMissingExportTypes is returned when an export entry has no types for the npm distribution.
	ErrMissingExportTypes = zerr.New("package.json exports must declare types for the npm distribution")

	// ErrMissingExportTarget is returned when an export entry has neither import nor default.
	ErrMissingExportTarget = zerr.New("package.json export is missing an import or default target")

	// ErrInvalidExports is returned when exports has an unsupported shape.
	ErrInvalidExports = zerr.New("package.json exports has an unsupported shape")

	// ErrTypeCheckFailed is returned when the type checker reports diagnostics or cannot run.
	ErrTypeCheckFailed = zerr.New("type check failed")

	// ErrTranspileFailed is returned when the transpiler fails.
	ErrTranspileFailed = zerr.New("transpile failed")

	// ErrCommandFailed is returned when an external process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrLayerBuildFailed is returned when a layer cannot be produced.
	ErrLayerBuildFailed = zerr.New("failed to build layer")

	// ErrPackagingFailed is returned when a package cannot be assembled.
	ErrPackagingFailed = zerr.New("failed to package project")

	// ErrBuildExecutionFailed is returned when an executor fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrGraphLoadFailed is returned when the project graph cannot be produced.
	ErrGraphLoadFailed = zerr.New("failed to load project graph")

	// ErrGraphParseFailed is returned when the project graph cannot be parsed.
	ErrGraphParseFailed = zerr.New("failed to parse project graph")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrWorkspaceRootNotFound is returned when no workspace root can be discovered.
	ErrWorkspaceRootNotFound = zerr.New("could not find strata.yaml or nx.json")

	// ErrStoreCreateFailed is returned when the layer info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create layer info store directory")

	// ErrStoreReadFailed is returned when the layer info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read layer info")

	// ErrStoreUnmarshalFailed is returned when the layer info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal layer info")

	// ErrStoreMarshalFailed is returned when the layer info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal layer info")

	// ErrStoreWriteFailed is returned when the layer info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write layer info")

	// ErrStoreDeleteFailed is returned when the layer info cannot be deleted.
	ErrStoreDeleteFailed = zerr.New("failed to delete layer info")

	// ErrCreateDirFailed is returned when a directory cannot be created.
	ErrCreateDirFailed = zerr.New("failed to create directory")

	// ErrRemoveFailed is returned when a path cannot be removed.
	ErrRemoveFailed = zerr.New("failed to remove path")

	// ErrCopyFailed is returned when a path cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy path")

	// ErrMoveFailed is returned when a path cannot be moved.
	ErrMoveFailed = zerr.New("failed to move path")

	// ErrReadDirFailed is returned when a directory cannot be listed.
	ErrReadDirFailed = zerr.New("failed to read directory")

	// ErrAssetResolutionFailed is returned when assets cannot be enumerated.
	ErrAssetResolutionFailed = zerr.New("failed to resolve assets")

	// ErrInvalidAssetPattern is returned when an asset pattern is malformed.
	ErrInvalidAssetPattern = zerr.New("invalid asset pattern")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrWriteHashFailed is returned when writing the hash to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")
)
