package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	castkitctl "github.com/orbiqd/orbiqd-castkit/internal/app/castkit-ctl"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/cli"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

func main() {
	var command castkitctl.Command

	kctx := kong.Parse(&command,
		kong.Name(cli.ExecutableCtl),
		kong.Description("Launches and supervises Android screen mirroring and webcam sessions."),
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
