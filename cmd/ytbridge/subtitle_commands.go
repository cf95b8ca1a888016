package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytbridge/internal/history"
	"ytbridge/internal/logging"
	"ytbridge/internal/subtitles"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	subtitlesCmd := &cobra.Command{
		Use:   "subtitles",
		Short: "Subtitle track operations",
	}

	subtitlesCmd.AddCommand(newSubtitlesListCommand(ctx))
	subtitlesCmd.AddCommand(newSubtitlesGetCommand(ctx))

	return subtitlesCmd
}

func newSubtitlesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <url>",
		Short: "List available subtitle tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := subtitleService(ctx)
			if err != nil {
				return err
			}
			listing, err := svc.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(listing, "\n"))
			return nil
		},
	}
}

func newSubtitlesGetCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "get <url>",
		Short: "Download subtitle files into the downloads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := subtitleService(ctx)
			if err != nil {
				return err
			}
			out, err := svc.Download(cmd.Context(), args[0], language)
			recordHistory(cfg, history.KindSubtitles, args[0], strings.Join(out.Paths, ", "), err)
			if err != nil {
				return err
			}
			for _, path := range out.Paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Subtitle language code (defaults to configuration)")
	return cmd
}

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Print a plain-text transcript from auto-generated captions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := subtitleService(ctx)
			if err != nil {
				return err
			}
			transcript, err := svc.Transcript(cmd.Context(), args[0], language)
			recordHistory(cfg, history.KindTranscript, args[0], "", err)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), transcript)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Caption language code (defaults to configuration)")
	return cmd
}

func subtitleService(ctx *commandContext) (*subtitles.Service, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, _ := newToolClients(cfg, logger)
	return subtitles.NewService(cfg, client, logger), nil
}
