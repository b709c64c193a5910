package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parry/cache"
	"github.com/wesleyorama2/parry/internal/output"
	"github.com/wesleyorama2/parry/service"
)

var downloadCmd = &cobra.Command{
	Use:   "download URL",
	Short: "Download the URL to a uniquely named local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, _ := cmd.Flags().GetStringArray("header")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		outDir, _ := cmd.Flags().GetString("out")
		keep, _ := cmd.Flags().GetBool("cache")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		baseURL, path := parseURL(args[0])
		log := logger(cmd)
		formatter := output.NewFormatter(false, noColor)

		opts := []service.Option{service.WithLogger(log)}
		if outDir != "" {
			opts = append(opts, service.WithDownloadDir(outDir))
		}
		svc := service.New(service.Config{
			BaseURL: baseURL,
			Headers: headerMap(headers),
			Timeout: timeout,
		}, opts...)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		call := service.Download(ctx, svc, path, nil)
		local, ok, err := call.Result()
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			return err
		}
		if !ok {
			fmt.Print(formatter.FormatSuccess("no usable media type, nothing saved"))
			return nil
		}

		if keep {
			dir, err := defaultCacheDir()
			if err != nil {
				return err
			}
			store, err := cache.NewStore(dir,
				cache.WithDelegate(cache.SlidingTTL(ttl)),
				cache.WithLogger(log),
			)
			if err != nil {
				return err
			}
			if err := store.Acquire(local, baseURL+path); err != nil {
				return err
			}
			fmt.Print(formatter.FormatSuccess("downloaded into cache"))
			return nil
		}

		fmt.Print(formatter.FormatSuccess(local))
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	downloadCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	downloadCmd.Flags().Bool("no-color", false, "Disable colored output")
	downloadCmd.Flags().StringP("out", "o", "", "Directory to place the downloaded file in")
	downloadCmd.Flags().Bool("cache", false, "Fold the downloaded file into the disk cache")
	downloadCmd.Flags().Duration("ttl", 5*time.Minute, "Cache entry time to live (with --cache)")
}
