package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	castkitmcp "github.com/orbiqd/orbiqd-castkit/internal/app/castkit-mcp"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/cli"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

func main() {
	var command castkitmcp.Command

	kctx := kong.Parse(&command,
		kong.Name(cli.ExecutableMCP),
		kong.Description("Serves screen mirroring and webcam session control as MCP tools over stdio."),
		kong.UsageOnError(),
		kong.DefaultEnvars("CASTKIT"),
	)

	kctx.FatalIfErrorf(cli.SetupLogging(command.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal := launcher.NewJournal()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(journal)

	kctx.FatalIfErrorf(kctx.Run())
}
