package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytbridge/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloads directory: %s\n", cfg.Paths.DownloadsDir)
			fmt.Fprintf(out, "Log directory:       %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "API bind:            %s\n", cfg.Paths.APIBind)
			fmt.Fprintf(out, "History enabled:     %s\n", yesNo(cfg.History.Enabled))

			if free, err := deps.FreeSpace(cfg.Paths.DownloadsDir); err == nil {
				fmt.Fprintf(out, "Free disk space:     %s\n", humanize.IBytes(free))
			}

			rows := make([][]string, 0, 2)
			for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}
			fmt.Fprintln(outputWriter(cmd), renderTable(
				[]string{"Tool", "Command", "Available", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
