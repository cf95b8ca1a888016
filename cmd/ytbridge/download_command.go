package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytbridge/internal/download"
	"ytbridge/internal/history"
	"ytbridge/internal/logging"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var (
		resolution string
		startTime  string
		endTime    string
		chapter    string
	)

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video into the downloads directory",
		Long: `Download a video into the downloads directory.

Use --start/--end (HH:MM:SS) to trim a section, or --chapter to extract
named chapters ("all" extracts every chapter alongside the full video).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			client, trimmer := newToolClients(cfg, logger)
			svc := download.NewService(cfg, client, trimmer, logger)

			result, err := svc.Run(cmd.Context(), download.Request{
				URL:        args[0],
				Resolution: resolution,
				StartTime:  startTime,
				EndTime:    endTime,
				Chapter:    chapter,
			})
			recordHistory(cfg, history.KindVideo, args[0], result, err)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "Target resolution (480p, 720p, 1080p, best)")
	cmd.Flags().StringVar(&startTime, "start", "", "Section start timecode (HH:MM:SS)")
	cmd.Flags().StringVar(&endTime, "end", "", "Section end timecode (HH:MM:SS)")
	cmd.Flags().StringVar(&chapter, "chapter", "", `Chapter title to extract, or "all"`)

	return cmd
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audio <url>",
		Short: "Download the audio track as mp3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			client, trimmer := newToolClients(cfg, logger)
			svc := download.NewService(cfg, client, trimmer, logger)

			result, err := svc.RunAudio(cmd.Context(), args[0])
			recordHistory(cfg, history.KindAudio, args[0], result, err)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
