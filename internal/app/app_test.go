package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const root = "/ws"

type fakeResolver struct{}

func (fakeResolver) Resolve(opts domain.Options, ectx domain.ExecutorContext) (*domain.Config, error) {
	projectDir := filepath.Join(ectx.WorkspaceRoot, "libs", ectx.ProjectName)
	return &domain.Config{
		ExecutionID:    ectx.ExecutionID,
		Distribution:   opts.Distribution,
		TargetRuntime:  opts.TargetRuntime,
		Layout:         opts.Layout,
		ProjectName:    ectx.ProjectName,
		WorkspaceRoot:  ectx.WorkspaceRoot,
		ProjectDir:     projectDir,
		ProjectBaseDir: filepath.Join(projectDir, "src"),
		ProjectDistDir: filepath.Join(projectDir, "dist"),
		TmpDir:         filepath.Join(ectx.WorkspaceRoot, "tmp", ectx.ExecutionID.String()),
	}, nil
}

func (fakeResolver) Validate(*domain.Config) error {
	return nil
}

type fakeMapper struct{}

func (fakeMapper) Translate(*domain.Config, []*domain.Dependency) (domain.PathMappings, error) {
	return domain.PathMappings{BaseURL: "."}, nil
}

type call struct {
	method string
	opts   domain.Options
	ectx   domain.ExecutorContext
}

type fakePipeline struct {
	mu    sync.Mutex
	calls []call
	fail  map[string]error
}

func (p *fakePipeline) record(method string, opts domain.Options, ectx domain.ExecutorContext) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call{method: method, opts: opts, ectx: ectx})
	return p.fail[ectx.ProjectName]
}

func (p *fakePipeline) Package(_ context.Context, opts domain.Options, ectx domain.ExecutorContext) error {
	return p.record("package", opts, ectx)
}

func (p *fakePipeline) Layer(_ context.Context, opts domain.Options, ectx domain.ExecutorContext) (domain.Layer, error) {
	if err := p.record("layer", opts, ectx); err != nil {
		return domain.Layer{}, err
	}
	return domain.Layer{Project: ectx.ProjectName, Dir: filepath.Join(root, "dist", ".strata", ectx.ProjectName)}, nil
}

type fixture struct {
	app        *app.App
	graphs     *mocks.MockGraphProvider
	transpiler *mocks.MockTranspiler
	fs         *mocks.MockFileSystem
	telemetry  *mocks.MockTelemetry
	vertex     *mocks.MockVertex
	logger     *mocks.MockLogger
	pipeline   *fakePipeline
	graph      *domain.ProjectGraph
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		graphs:     mocks.NewMockGraphProvider(ctrl),
		transpiler: mocks.NewMockTranspiler(ctrl),
		fs:         mocks.NewMockFileSystem(ctrl),
		telemetry:  mocks.NewMockTelemetry(ctrl),
		vertex:     mocks.NewMockVertex(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		pipeline:   &fakePipeline{fail: make(map[string]error)},
		graph:      domain.NewProjectGraph(),
	}

	settings := &domain.Settings{
		Root:          root,
		Layout:        domain.LayoutESM,
		Entry:         "src/index.ts",
		TargetRuntime: domain.DefaultTargetRuntime,
	}
	f.app = app.New(settings, f.graphs, fakeResolver{}, fakeMapper{}, f.transpiler, f.pipeline, f.fs, f.telemetry, f.logger)

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return f
}

func (f *fixture) addProject(t *testing.T, name string, targets map[string]domain.Target) {
	t.Helper()
	require.NoError(t, f.graph.AddProject(&domain.ProjectNode{Name: name, Root: "libs/" + name, Targets: targets}))
}

// expectRun sets up the calls every run makes: graph load, scratch removal and telemetry close.
func (f *fixture) expectRun() {
	f.graphs.EXPECT().Load(gomock.Any(), root).Return(f.graph, nil)
	f.fs.EXPECT().Remove(gomock.Any()).Return(nil).AnyTimes()
	f.telemetry.EXPECT().Close().Return(nil)
}

func TestApp_Build_Internal(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "web", map[string]domain.Target{
		"build": {Executor: domain.ExecutorBuild},
	})

	distDir := filepath.Join(root, "libs", "web", "dist")
	f.fs.EXPECT().Remove(distDir).Return(nil)
	f.expectRun()
	f.telemetry.EXPECT().Record(gomock.Any(), "build web").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		})
	f.vertex.EXPECT().Complete(nil)

	f.transpiler.EXPECT().Transpile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.TranspileRequest) error {
			assert.Equal(t, filepath.Join(root, "libs", "web", "src"), req.SourceDir)
			assert.Equal(t, distDir, req.OutDir)
			assert.Equal(t, "es6", req.ModuleType)
			assert.True(t, req.SourceMaps)
			assert.Equal(t, domain.DefaultTargetRuntime, req.TargetRuntime)
			assert.Equal(t, ".", req.Mappings.BaseURL)
			assert.Contains(t, req.ExcludePaths, distDir)
			return nil
		})

	err := f.app.Build(context.Background(), app.RunOptions{Projects: []string{"web"}})
	require.NoError(t, err)
	assert.Empty(t, f.pipeline.calls)
}

func TestApp_Build_InternalTranspileFailure(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "web", nil)

	f.expectRun()
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		})
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))
	f.transpiler.EXPECT().Transpile(gomock.Any(), gomock.Any()).Return(errors.New("swc exited with 1"))
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Build(context.Background(), app.RunOptions{Projects: []string{"web"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, "swc exited with 1")
}

func TestApp_EveryDistributionHasAHandler(t *testing.T) {
	for _, d := range domain.Distributions() {
		t.Run(d.String(), func(t *testing.T) {
			f := newFixture(t)
			f.addProject(t, "lib", nil)
			f.expectRun()

			run := f.app.Package
			switch d {
			case domain.DistributionInternal, domain.DistributionExternal, domain.DistributionLayer:
				run = f.app.Build
			}
			if d == domain.DistributionInternal {
				f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
						return ctx, f.vertex
					})
				f.vertex.EXPECT().Complete(nil)
				f.transpiler.EXPECT().Transpile(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := run(context.Background(), app.RunOptions{
				Projects:    []string{"lib"},
				Overrides:   domain.TargetOptions{Distribution: d.String()},
				ExecutionID: "outer",
			})
			require.NoError(t, err)

			switch d {
			case domain.DistributionInternal:
				assert.Empty(t, f.pipeline.calls)
			case domain.DistributionLayer:
				require.Len(t, f.pipeline.calls, 1)
				assert.Equal(t, "layer", f.pipeline.calls[0].method)
			default:
				require.Len(t, f.pipeline.calls, 1)
				assert.Equal(t, "package", f.pipeline.calls[0].method)
				assert.Equal(t, d, f.pipeline.calls[0].opts.Distribution)
			}
		})
	}
}

func TestApp_LayerRequiresExecutionID(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "lib", nil)
	f.expectRun()
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Build(context.Background(), app.RunOptions{
		Projects:  []string{"lib"},
		Overrides: domain.TargetOptions{Distribution: "layer"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLayerDistributionReserved.Error())
	assert.Empty(t, f.pipeline.calls)
}

func TestApp_DistributionNotSupportedByCommand(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "lib", nil)
	f.expectRun()
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Package(context.Background(), app.RunOptions{
		Projects:  []string{"lib"},
		Overrides: domain.TargetOptions{Distribution: "internal"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, domain.ErrDistributionNotSupported.Error())
}

func TestApp_OptionsPrecedence(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "lib", map[string]domain.Target{
		"package": {Executor: domain.ExecutorPackage, Options: domain.TargetOptions{
			Distribution:  "npm",
			Entry:         "src/main.ts",
			Assets:        []string{"*.md"},
			TargetRuntime: "es2019",
		}},
		"bundle": {Executor: domain.ExecutorPackage, Options: domain.TargetOptions{
			Distribution: "app",
		}},
	})
	f.expectRun()
	f.graphs.EXPECT().Load(gomock.Any(), root).Return(f.graph, nil)
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Package(context.Background(), app.RunOptions{
		Projects:  []string{"lib"},
		Target:    "package",
		Overrides: domain.TargetOptions{TargetRuntime: "es2022", Layout: "dist"},
	})
	require.NoError(t, err)

	require.Len(t, f.pipeline.calls, 1)
	assert.Equal(t, domain.Options{
		Distribution:  domain.DistributionNPM,
		Entry:         "src/main.ts",
		Assets:        []string{"*.md"},
		TargetRuntime: "es2022",
		Layout:        domain.LayoutDist,
	}, f.pipeline.calls[0].opts)

	err = f.app.Package(context.Background(), app.RunOptions{Projects: []string{"lib"}})
	require.NoError(t, err)
	require.Len(t, f.pipeline.calls, 2)
	assert.Equal(t, domain.DistributionApp, f.pipeline.calls[1].opts.Distribution)
	assert.Equal(t, "src/index.ts", f.pipeline.calls[1].opts.Entry)
	assert.Equal(t, domain.LayoutESM, f.pipeline.calls[1].opts.Layout)
}

func TestApp_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "lib", nil)
	f.expectRun()
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Package(context.Background(), app.RunOptions{Projects: []string{"lib"}, Target: "release"})
	assert.ErrorContains(t, err, domain.ErrTargetNotFound.Error())
}

func TestApp_MultipleProjects(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"a", "b", "c"} {
		f.addProject(t, name, nil)
	}
	f.pipeline.fail["b"] = errors.New("layer failed")
	f.expectRun()
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Package(context.Background(), app.RunOptions{Projects: []string{"a", "b", "c"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, "layer failed")

	require.Len(t, f.pipeline.calls, 3)
	execID := f.pipeline.calls[0].ectx.ExecutionID
	assert.NotEmpty(t, execID)
	for _, c := range f.pipeline.calls {
		assert.Equal(t, execID, c.ectx.ExecutionID)
		assert.Equal(t, root, c.ectx.WorkspaceRoot)
	}
}

func TestApp_RemovesScratchOfOwnExecutionOnly(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, "lib", nil)
	f.graphs.EXPECT().Load(gomock.Any(), root).Return(f.graph, nil).Times(2)
	f.telemetry.EXPECT().Close().Return(nil).Times(2)

	var removed []string
	f.fs.EXPECT().Remove(gomock.Any()).DoAndReturn(func(path string) error {
		removed = append(removed, path)
		return nil
	}).AnyTimes()

	require.NoError(t, f.app.Package(context.Background(), app.RunOptions{Projects: []string{"lib"}}))
	require.Len(t, removed, 1)
	assert.Equal(t, filepath.Join(root, "tmp", f.pipeline.calls[0].ectx.ExecutionID.String()), removed[0])

	require.NoError(t, f.app.Package(context.Background(), app.RunOptions{
		Projects:    []string{"lib"},
		ExecutionID: "outer",
	}))
	assert.Len(t, removed, 1)
}

func TestApp_NoProjects(t *testing.T) {
	f := newFixture(t)

	err := f.app.Build(context.Background(), app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrNoProjectsSpecified)
}

func TestApp_GraphLoadFailure(t *testing.T) {
	f := newFixture(t)
	f.graphs.EXPECT().Load(gomock.Any(), root).Return(nil, errors.New("nx not installed"))
	f.telemetry.EXPECT().Close().Return(nil)
	f.logger.EXPECT().Error(gomock.Any())

	err := f.app.Build(context.Background(), app.RunOptions{Projects: []string{"web"}})
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, "nx not installed")
}

func TestApp_Clean(t *testing.T) {
	tests := []struct {
		name    string
		opts    app.CleanOptions
		removed []string
	}{
		{
			name:    "Default",
			removed: []string{"/ws/dist/.strata", "/ws/.strata/store"},
		},
		{
			name:    "All",
			opts:    app.CleanOptions{All: true},
			removed: []string{"/ws/dist/.strata", "/ws/.strata/store", "/ws/tmp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			var removed []string
			f.fs.EXPECT().Remove(gomock.Any()).DoAndReturn(func(path string) error {
				removed = append(removed, path)
				return nil
			}).Times(len(tt.removed))

			require.NoError(t, f.app.Clean(context.Background(), tt.opts))
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestApp_CleanReportsFailures(t *testing.T) {
	f := newFixture(t)
	f.fs.EXPECT().Remove("/ws/dist/.strata").Return(errors.New("permission denied"))
	f.fs.EXPECT().Remove("/ws/.strata/store").Return(nil)

	err := f.app.Clean(context.Background(), app.CleanOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to remove layer cache")
	assert.ErrorContains(t, err, "permission denied")
}
