package castkitctl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

// DetectCmd detects the phone's WiFi address over the USB bridge.
type DetectCmd struct {
	Timeout time.Duration `help:"Per-invocation bridge command timeout." default:"5s"`
}

// Run resolves the address and prints it to stdout.
func (command *DetectCmd) Run(ctx context.Context, journal *launcher.Journal) error {
	events, cancel := journal.Subscribe(64)
	defer cancel()

	go func() {
		for event := range events {
			slog.Log(context.Background(), event.Level, event.Message, slog.String("source", event.Source))
		}
	}()

	resolver := bridge.NewResolver(journal, bridge.WithCommandTimeout(command.Timeout))

	address, err := resolver.ResolveViaUSB(ctx)
	if err != nil {
		return err
	}

	fmt.Println(address.String())

	return nil
}
