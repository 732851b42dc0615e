package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     tasks.NewEngine(opts.Config, opts.Logger),
	}
}

// SetLogger swaps the logger of the runner and its engine.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.engine = tasks.NewEngine(r.config, l)
}

// Before loads the file named by --config when it was passed explicitly and
// differs from the one already loaded.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if !cmd.IsSet("config") || path == r.configPath {
		return ctx, r.config.Validate()
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return ctx, err
	}
	if err := config.Validate(); err != nil {
		return ctx, fmt.Errorf("%s: %w", path, err)
	}

	r.config = config
	r.configPath = path
	shared.SetLogLevel(r.logger, config.Log.Level)
	r.engine = tasks.NewEngine(config, r.logger)
	r.logger.Debug("loaded config", "path", path)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, importCommand, teamCommand, folderCommand, configCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// progress starts printing updates of a running workflow. The returned func
// closes the channel and waits until every update is written.
func (r *Runner) progress() (chan tasks.ProgressUpdate, func()) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			switch update.Phase {
			case tasks.ReadInput, tasks.ScanFolder:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.MatchRows:
				r.writePlain("🔗 %s\n", update.Message)
			case tasks.WriteFiles:
				r.writePlain("   %s\n", update.Message)
			case tasks.ExportRows:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	return progressCh, func() {
		close(progressCh)
		wg.Wait()
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
