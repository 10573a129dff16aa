package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// BackupCmd exports and imports the pending queue as JSON
func BackupCmd(load Loader) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the pending session queue",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the queue to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := svc.Backup.ExportToFile(cmd.Context(), output); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			info, err := os.Stat(output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported to %s (%.2f KB)\n", output, float64(info.Size())/1024)
			return nil
		},
	}
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	backupCmd.AddCommand(exportCmd)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load sessions from a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			replace, _ := cmd.Flags().GetBool("replace")

			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file %s: %w", input, err)
			}

			svc, release, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			n, err := svc.Backup.ImportFromFile(cmd.Context(), input, replace)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			mode := "merged"
			if replace {
				mode = "replaced queue with"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Import complete: %s %d sessions\n", mode, n)
			return nil
		},
	}
	importCmd.Flags().StringP("input", "i", "", "Input file path (required)")
	importCmd.Flags().Bool("replace", false, "Replace the queue instead of merging (WARNING: destructive)")
	_ = importCmd.MarkFlagRequired("input")
	backupCmd.AddCommand(importCmd)

	return backupCmd
}
