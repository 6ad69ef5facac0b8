package mcp

import (
	"io"

	"github.com/dupliscan/dupliscan/app"
	"github.com/dupliscan/dupliscan/domain"
	"github.com/dupliscan/dupliscan/internal/config"
	"github.com/dupliscan/dupliscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
// All detection runs go through a single-worker run queue so concurrent
// tool calls are serialized rather than interleaved.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
	runQueue   *service.RunQueue
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
		runQueue:   service.NewRunQueue(4),
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// RunQueue exposes the shared detection run queue.
func (d *Dependencies) RunQueue() *service.RunQueue {
	return d.runQueue
}

// Close drains the run queue.
func (d *Dependencies) Close() {
	d.runQueue.Close()
}

// BuildCloneUseCase assembles a fresh CloneUseCase with injected dependencies.
func (d *Dependencies) BuildCloneUseCase() (*app.CloneUseCase, error) {
	return app.NewCloneUseCaseBuilder().
		WithService(service.NewCloneService(d.fileReader, service.NewSilentProgressManager())).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewCloneOutputFormatter(nil)).
		WithConfigLoader(service.NewCloneConfigurationLoader()).
		WithReportWriter(service.NewFileOutputWriter(io.Discard)).
		Build()
}
