package castkitctl

import (
	"context"
	"fmt"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/droidcam"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/scrcpy"
)

// DoctorCmd reports the availability of the managed tools and the bridge.
type DoctorCmd struct{}

// Run checks each external tool and prints one line per tool.
func (command *DoctorCmd) Run(ctx context.Context, journal *launcher.Journal) error {
	missing := 0

	if found, err := scrcpy.Discovery(ctx); err != nil {
		return fmt.Errorf("check %s: %w", scrcpy.ExecutableName, err)
	} else if !found {
		missing++
		fmt.Printf("%-12s missing\n", scrcpy.ExecutableName)
	} else {
		version, err := scrcpy.Version(ctx)
		if err != nil {
			fmt.Printf("%-12s found (version unknown)\n", scrcpy.ExecutableName)
		} else {
			fmt.Printf("%-12s found (v%s, flag table v%s)\n", scrcpy.ExecutableName, version, scrcpy.Flags.ToolVersion)
		}
	}

	if found, err := droidcam.Discovery(ctx); err != nil {
		return fmt.Errorf("check %s: %w", droidcam.ExecutableName, err)
	} else if !found {
		missing++
		fmt.Printf("%-12s missing\n", droidcam.ExecutableName)
	} else {
		fmt.Printf("%-12s found\n", droidcam.ExecutableName)
	}

	if found, err := bridge.NewResolver(journal).Discovery(ctx); err != nil {
		return fmt.Errorf("check %s: %w", bridge.ExecutableName, err)
	} else if !found {
		missing++
		fmt.Printf("%-12s missing\n", bridge.ExecutableName)
	} else {
		fmt.Printf("%-12s found\n", bridge.ExecutableName)
	}

	if missing > 0 {
		return fmt.Errorf("%d tool(s) missing", missing)
	}

	return nil
}
