package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parry/internal/output"
	"github.com/wesleyorama2/parry/service"
)

var deleteCmd = &cobra.Command{
	Use:   "delete URL",
	Short: "Make a DELETE request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, _ := cmd.Flags().GetStringArray("header")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")

		baseURL, path := parseURL(args[0])
		svc := newService(baseURL, headerMap(headers), timeout, logger(cmd))
		formatter := output.NewFormatter(verbose, noColor)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		call := service.Delete(ctx, svc, path)
		if _, _, err := call.Result(); err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			return err
		}
		fmt.Print(formatter.FormatSuccess("deleted"))
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	deleteCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	deleteCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	deleteCmd.Flags().Bool("no-color", false, "Disable colored output")
}
