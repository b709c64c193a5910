package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parry/cache"
	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/internal/output"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/service"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL := args[0]
		headers, _ := cmd.Flags().GetStringArray("header")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		nestingKey, _ := cmd.Flags().GetString("key")
		cached, _ := cmd.Flags().GetBool("cached")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		baseURL, path := parseURL(rawURL)
		log := logger(cmd)
		svc := newService(baseURL, headerMap(headers), timeout, log)
		formatter := output.NewFormatter(verbose, noColor)

		originURL := baseURL + path

		var store *cache.Store
		if cached {
			dir, err := defaultCacheDir()
			if err != nil {
				return err
			}
			store, err = cache.NewStore(dir,
				cache.WithDelegate(cache.SlidingTTL(ttl)),
				cache.WithLogger(log),
			)
			if err != nil {
				return err
			}
			if v, ok, err := cache.Fetch[dynamic.Value](store, originURL); err == nil && ok {
				fmt.Print(formatter.FormatSuccess("cache hit"))
				fmt.Println(v.Text())
				return nil
			}
		}

		d := request.Get(path)
		if nestingKey != "" {
			d = d.WithNestingKey(nestingKey)
		}
		if verbose {
			fmt.Print(formatter.FormatRequest("GET", originURL, nil))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		call := service.DoDynamic(ctx, svc, d)
		v, ok, err := call.Result()
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			return err
		}
		if !ok {
			fmt.Print(formatter.FormatSuccess("empty response"))
			return nil
		}

		fmt.Println(v.Text())

		if store != nil {
			if err := store.Write(v, originURL); err != nil {
				log.Debug().Err(err).Msg("cache write failed")
			}
		}
		return nil
	},
}

func init() {
	getCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	getCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	getCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	getCmd.Flags().Bool("no-color", false, "Disable colored output")
	getCmd.Flags().String("key", "", "Unwrap the response payload from under this top-level key")
	getCmd.Flags().Bool("cached", false, "Consult the disk cache before dispatching")
	getCmd.Flags().Duration("ttl", 5*time.Minute, "Cache entry time to live (with --cached)")
}
