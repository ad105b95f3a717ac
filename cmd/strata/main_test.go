package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type stubResolver struct{}

func (stubResolver) Resolve(domain.Options, domain.ExecutorContext) (*domain.Config, error) {
	return nil, errors.New("not resolvable")
}

func (stubResolver) Validate(*domain.Config) error {
	return nil
}

type stubMapper struct{}

func (stubMapper) Translate(*domain.Config, []*domain.Dependency) (domain.PathMappings, error) {
	return domain.PathMappings{}, nil
}

type stubPipeline struct{}

func (stubPipeline) Package(context.Context, domain.Options, domain.ExecutorContext) error {
	return nil
}

func (stubPipeline) Layer(context.Context, domain.Options, domain.ExecutorContext) (domain.Layer, error) {
	return domain.Layer{}, nil
}

type testComponents struct {
	graphs    *mocks.MockGraphProvider
	fs        *mocks.MockFileSystem
	telemetry *mocks.MockTelemetry
	logger    *mocks.MockLogger
	provider  ComponentProvider
}

func newTestComponents(t *testing.T) *testComponents {
	t.Helper()
	ctrl := gomock.NewController(t)

	c := &testComponents{
		graphs:    mocks.NewMockGraphProvider(ctrl),
		fs:        mocks.NewMockFileSystem(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	application := app.New(
		domain.DefaultSettings("/ws"),
		c.graphs,
		stubResolver{},
		stubMapper{},
		mocks.NewMockTranspiler(ctrl),
		stubPipeline{},
		c.fs,
		c.telemetry,
		c.logger,
	)
	c.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: c.logger}, func() {}, nil
	}
	return c
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	c := newTestComponents(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, c.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that a failed build exits with 1 and is logged once.
func TestRun_ExecutionError(t *testing.T) {
	c := newTestComponents(t)
	c.graphs.EXPECT().Load(gomock.Any(), "/ws").Return(nil, errors.New("load failed"))
	c.telemetry.EXPECT().Close().Return(nil)
	c.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"build", "web"}, new(bytes.Buffer), c.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_CommandError verifies that errors raised outside an execution are logged by run.
func TestRun_CommandError(t *testing.T) {
	c := newTestComponents(t)
	c.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"clean", "unexpected"}, new(bytes.Buffer), c.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Clean verifies that clean removes the caches below the workspace root.
func TestRun_Clean(t *testing.T) {
	c := newTestComponents(t)
	c.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	c.fs.EXPECT().Remove("/ws/dist/.strata").Return(nil)
	c.fs.EXPECT().Remove("/ws/.strata/store").Return(nil)

	exitCode := run(context.Background(), []string{"clean"}, new(bytes.Buffer), c.provider)
	assert.Equal(t, 0, exitCode)
}
