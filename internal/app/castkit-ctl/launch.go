package castkitctl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/cli"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/supervisor"
)

// stopTimeout bounds the shutdown path after a Ctrl-C, beyond the
// supervisor's own SIGTERM-to-SIGKILL grace period.
const stopTimeout = 15 * time.Second

func newSupervisor(tool launcher.ToolKind, journal *launcher.Journal, grace time.Duration, resolve supervisor.Resolver) (*supervisor.Supervisor, error) {
	logDir, err := cli.ResolveRuntimeLogDir()
	if err != nil {
		return nil, err
	}

	return supervisor.New(tool, journal,
		supervisor.WithGracePeriod(grace),
		supervisor.WithSessionLogs(afero.NewOsFs(), logDir),
		supervisor.WithExecutableResolver(resolve),
	), nil
}

// runSession starts the built command under the supervisor, renders journal
// events through slog, and blocks until the process exits or the context is
// cancelled (Ctrl-C), in which case the process is stopped gracefully.
func runSession(ctx context.Context, journal *launcher.Journal, sup *supervisor.Supervisor, spec launcher.CommandSpec) error {
	events, cancel := journal.Subscribe(256)
	defer cancel()

	go func() {
		for event := range events {
			slog.Log(context.Background(), event.Level, event.Message, slog.String("source", event.Source))
		}
	}()

	if err := sup.Start(ctx, spec); err != nil {
		return err
	}

	exited := make(chan struct{})
	go func() {
		_ = sup.Wait(context.Background())
		close(exited)
	}()

	select {
	case <-ctx.Done():
		stopCtx, cancelStop := context.WithTimeout(context.Background(), stopTimeout)
		defer cancelStop()

		if err := sup.Stop(stopCtx); err != nil {
			return fmt.Errorf("stop %s: %w", sup.Tool(), err)
		}
		<-exited

	case <-exited:
	}

	handle, _ := sup.Handle()
	final := sup.State()

	if err := sup.Acknowledge(); err != nil {
		return err
	}

	if final == launcher.StateCrashed {
		exitCode := -1
		if handle.ExitCode != nil {
			exitCode = *handle.ExitCode
		}
		return fmt.Errorf("%s crashed (exit code %d)", sup.Tool(), exitCode)
	}

	return nil
}
