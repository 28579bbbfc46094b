package cli

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/eko/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or clear the saved playback state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved playback state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := state.Open(cfg.State.Backend, cfg.State.Path)
		if err != nil {
			return errors.Wrap(err, "open state storage")
		}
		defer store.Close()

		bridge := state.NewBridge(store, state.WithLogger(consoleLogger(cfg)))
		r, err := bridge.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if r == nil {
			fmt.Fprintln(out, "No saved state.")
			return nil
		}

		if r.CurrentTrack != nil {
			fmt.Fprintf(out, "Track:       %s (%s)\n", r.CurrentTrack.Title, r.CurrentTrack.ID)
		} else {
			fmt.Fprintln(out, "Track:       none")
		}
		fmt.Fprintf(out, "Queue:       %d tracks\n", len(r.Queue))
		if r.Volume != nil {
			fmt.Fprintf(out, "Volume:      %d%%\n", int(*r.Volume*100+0.5))
		}
		if r.RepeatMode != nil {
			fmt.Fprintf(out, "Repeat:      %s\n", r.RepeatMode.String())
		}
		if r.Shuffle != nil {
			fmt.Fprintf(out, "Shuffle:     %t\n", *r.Shuffle)
		}
		fmt.Fprintf(out, "Favorites:   %d\n", len(r.Favorites))

		if ts, ok := store.(interface {
			UpdatedAt(key string) (time.Time, error)
		}); ok {
			if at, err := ts.UpdatedAt(state.Key); err == nil && !at.IsZero() {
				fmt.Fprintf(out, "Saved:       %s\n", humanize.Time(at))
			}
		}
		return nil
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved playback state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := state.Open(cfg.State.Backend, cfg.State.Path)
		if err != nil {
			return errors.Wrap(err, "open state storage")
		}
		defer store.Close()

		if err := state.NewBridge(store).Reset(); err != nil {
			return errors.Wrap(err, "reset playback state")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Playback state cleared.")
		return nil
	},
}

func init() {
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)
	rootCmd.AddCommand(stateCmd)
}
