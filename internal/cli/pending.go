package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// PendingCmd manages finalized sessions waiting for upload
func PendingCmd(load Loader) *cobra.Command {
	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Manage sessions queued for upload",
	}

	pendingCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List queued sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			sessions, err := svc.Pending.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list pending sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No queued sessions")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATIENT\tRECORDINGS\tCREATED\tSTATUS")
			fmt.Fprintln(w, "--\t-------\t----------\t-------\t------")
			for _, ps := range sessions {
				patient := fmt.Sprintf("%d", ps.PatientID)
				if ps.PatientName != "" {
					patient = fmt.Sprintf("%d (%s)", ps.PatientID, ps.PatientName)
				}
				status := statusColor(ps.SyncStatus)
				if ps.ErrorMessage != "" {
					status += ": " + ps.ErrorMessage
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					ps.ID, patient, len(ps.Recordings), ps.CreatedAt.Local().Format("2006-01-02 15:04"), status)
			}
			return w.Flush()
		},
	})

	pendingCmd.AddCommand(&cobra.Command{
		Use:   "counts",
		Short: "Summarise the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			counts, err := svc.Pending.Counts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count pending sessions: %w", err)
			}
			used, err := svc.Pending.StorageUsed(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to measure recordings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pending: %d\n", counts.Pending)
			fmt.Fprintf(out, "Failed:  %d\n", counts.Failed)
			fmt.Fprintf(out, "Total:   %d\n", counts.Total)
			fmt.Fprintf(out, "Audio:   %.2f MB\n", float64(used)/1024/1024)
			return nil
		},
	})

	pendingCmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Upload every pending or failed session",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			report, err := svc.Sync.SyncAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if report.Attempted == 0 {
				fmt.Fprintln(out, "Nothing to sync")
				return nil
			}
			fmt.Fprintf(out, "%s %d of %d sessions\n",
				color.New(color.FgGreen).Sprint("✓ Synced"), report.Synced, report.Attempted)
			if report.Failed > 0 {
				fmt.Fprintf(out, "%s %d sessions (run 'ssdc pending list' for details)\n",
					color.New(color.FgRed).Sprint("✗ Failed"), report.Failed)
			}
			if report.Cleared > 0 {
				fmt.Fprintf(out, "  Cleared %d synced sessions\n", report.Cleared)
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d sessions failed to sync", report.Failed)
			}
			return nil
		},
	})

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove synced sessions (or every session with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			var removed int
			if all {
				removed, err = svc.Pending.ClearAll(cmd.Context())
			} else {
				removed, err = svc.Pending.ClearSynced(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to clear sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d sessions\n", removed)
			return nil
		},
	}
	clearCmd.Flags().Bool("all", false, "Remove every queued session and its audio, not just synced ones")
	pendingCmd.AddCommand(clearCmd)

	return pendingCmd
}
