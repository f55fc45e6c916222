package castkit_mcp

import (
	"context"
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/cli"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/supervisor"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/droidcam"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/scrcpy"
)

// Command is the castkit-mcp stdio server.
type Command struct {
	Log cli.LogConfig `embed:"" prefix:"log-"`
}

// Run serves the launcher operations as MCP tools over stdio. Both
// supervisors live in this process and stay independent of each other.
func (command *Command) Run(ctx context.Context, journal *launcher.Journal) error {
	logDir, err := cli.ResolveRuntimeLogDir()
	if err != nil {
		return err
	}

	manager := &sessionManager{
		resolver: bridge.NewResolver(journal),
		supervisors: map[launcher.ToolKind]*supervisor.Supervisor{
			launcher.ToolMirror: supervisor.New(launcher.ToolMirror, journal,
				supervisor.WithSessionLogs(afero.NewOsFs(), logDir),
				supervisor.WithExecutableResolver(func(ctx context.Context, _ string) (string, error) {
					return scrcpy.LocateExecutable(ctx)
				})),
			launcher.ToolWebcam: supervisor.New(launcher.ToolWebcam, journal,
				supervisor.WithSessionLogs(afero.NewOsFs(), logDir),
				supervisor.WithExecutableResolver(func(ctx context.Context, _ string) (string, error) {
					return droidcam.LocateExecutable(ctx)
				})),
		},
	}

	server := mcpserver.NewMCPServer(
		cli.ExecutableMCP,
		"1.0.0",
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	server.AddTools(
		createDetectTool(manager),
		createMirrorStartTool(manager),
		createWebcamStartTool(manager),
		createStopTool(manager, launcher.ToolMirror),
		createStopTool(manager, launcher.ToolWebcam),
		createStatusTool(manager),
	)

	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}

	return nil
}
