package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

type urlOutput struct {
	URL       string `json:"url"`
	Extension string `json:"extension"`
}

type downloadOutput struct {
	Path             string `json:"path"`
	BytesTransferred uint64 `json:"bytes_transferred"`
}

type fetchOutput struct {
	Path    string             `json:"path"`
	Quality string             `json:"quality"`
	Track   models.TrackRecord `json:"track"`
}

type extOutput struct {
	Quality   string `json:"quality"`
	Extension string `json:"extension"`
}

func newURLCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "url <platform> <id> <quality>",
		Short: "Resolve the media URL of a track",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents()
			if err != nil {
				return err
			}
			req := models.NewDownloadRequest(args[0], args[1], args[2])
			target, err := components.Resolver.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, urlOutput{URL: target.URL, Extension: req.Quality.Extension()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), target.URL)
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Search QQ Music and NetEase for tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents()
			if err != nil {
				return err
			}
			tracks, err := components.Search.Search(cmd.Context(), strings.Join(args, " "), models.Platform(platform))
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, tracks)
			}
			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks found")
				return nil
			}

			rows := make([][]string, 0, len(tracks))
			for i, track := range tracks {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					track.Title,
					track.Artist,
					track.Album,
					track.SourcePlatform.String(),
					track.ExternalID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Title", "Artist", "Album", "Platform", "ID"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", string(models.PlatformAuto), "Search platform: tx, wy or auto")
	return cmd
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var output string

	cmd := &cobra.Command{
		Use:   "download <platform> <id> <quality>",
		Short: "Download a track to disk",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents()
			if err != nil {
				return err
			}
			req := models.NewDownloadRequest(args[0], args[1], args[2])
			onProgress, done := newProgressFunc(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[1])
			opts := services.DownloadOptions{OnProgress: onProgress}

			var result *models.DownloadResult
			if output != "" {
				result, err = components.Downloader.DownloadToPath(cmd.Context(), req, output, opts)
			} else {
				if dir == "" {
					dir = ctx.cfg.Download.OutputDir
				}
				result, err = components.Downloader.DownloadToDir(cmd.Context(), req, dir, opts)
			}
			done()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, downloadOutput{Path: result.Path, BytesTransferred: result.Progress.BytesTransferred})
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (defaults to download.output_dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Exact output file path, overrides --dir")
	return cmd
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	var platform string
	var quality string
	var dir string

	cmd := &cobra.Command{
		Use:   "get <keyword>...",
		Short: "Search and download the first hit that succeeds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := ctx.ensureComponents()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = ctx.cfg.Download.OutputDir
			}
			keyword := strings.Join(args, " ")
			onProgress, done := newProgressFunc(cmd.OutOrStdout(), cmd.ErrOrStderr(), keyword)

			result, err := components.Fetcher.Fetch(cmd.Context(), keyword, models.Platform(platform), models.Quality(quality), dir, onProgress)
			done()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, fetchOutput{Path: result.Path, Quality: result.Quality.String(), Track: result.Track})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s - %s [%s] -> %s\n", result.Track.Title, result.Track.Artist, result.Quality, result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", string(models.PlatformAuto), "Search platform: tx, wy or auto")
	cmd.Flags().StringVarP(&quality, "quality", "q", string(models.QualityFLAC), "Preferred quality, lower tiers are tried on failure")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (defaults to download.output_dir)")
	return cmd
}

func newExtCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ext <quality>",
		Short: "Print the file extension used for a quality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := models.Quality(args[0]).Extension()
			if ctx.jsonOutput() {
				return writeJSON(cmd, extOutput{Quality: args[0], Extension: ext})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ext)
			return nil
		},
	}
}
