package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/andy/pomodolist/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	timerDuration time.Duration
	timerPreset   string
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run the countdown timer",
	Long:  `Run a countdown in the foreground or list the configured presets.`,
}

var timerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a countdown in the foreground until interrupted",
	Long: `Run a countdown in the foreground. Once it expires the timer keeps counting
the overrun. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := resolveDuration()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		countdown := appInstance.Countdown
		countdown.Configure(d)
		countdown.Toggle()

		out := cmd.OutOrStdout()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for {
			fmt.Fprintf(out, "\r%s", statusLine(countdown.Snapshot()))
			select {
			case <-ctx.Done():
				snap := countdown.Snapshot()
				countdown.Reset()
				fmt.Fprintln(out)
				fmt.Fprintf(out, "✓ Timer stopped (%s)\n", phaseLabel(snap.Phase))
				if o := snap.Overrun(); o != "" {
					fmt.Fprintf(out, "  Overrun: %s\n", o)
				}
				return nil
			case <-ticker.C:
			}
		}
	},
}

var timerPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the configured countdown presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, p := range appInstance.Config.Presets() {
			fmt.Fprintf(out, "%d. %-12s %s\n", i+1, p.Label, domain.FormatClock(int64(p.Duration/time.Second)))
		}
		return nil
	},
}

func init() {
	timerRunCmd.Flags().DurationVarP(&timerDuration, "duration", "d", 0, "countdown length (e.g. 25m); defaults to timer.default_duration")
	timerRunCmd.Flags().StringVarP(&timerPreset, "preset", "p", "", "preset label or 1-based number")

	timerCmd.AddCommand(timerRunCmd)
	timerCmd.AddCommand(timerPresetsCmd)
}

// resolveDuration picks the countdown length from flags or config
func resolveDuration() (time.Duration, error) {
	if timerPreset != "" {
		presets := appInstance.Config.Presets()
		if n, err := parsePosition(timerPreset, len(presets)); err == nil {
			return presets[n].Duration, nil
		}
		for _, p := range presets {
			if strings.EqualFold(p.Label, timerPreset) {
				return p.Duration, nil
			}
		}
		return 0, fmt.Errorf("preset %q not found", timerPreset)
	}
	if timerDuration != 0 {
		return timerDuration, nil
	}
	return appInstance.Config.Timer.DefaultDuration, nil
}

// statusLine renders one refresh of the foreground countdown
func statusLine(c domain.Countdown) string {
	line := fmt.Sprintf("%-8s %s", phaseLabel(c.Phase), c.Remaining())
	if o := c.Overrun(); o != "" {
		line += "  " + o
	}
	return line + "   "
}

func phaseLabel(p domain.CountdownPhase) string {
	return cases.Title(language.English).String(string(p))
}
