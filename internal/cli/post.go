package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/internal/output"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/service"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithBody(cmd, args[0], request.POST)
	},
}

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Make a PUT request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithBody(cmd, args[0], request.PUT)
	},
}

// runWithBody dispatches a body-carrying request parsed from the --data flag.
func runWithBody(cmd *cobra.Command, rawURL string, method request.Method) error {
	headers, _ := cmd.Flags().GetStringArray("header")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	data, _ := cmd.Flags().GetString("data")

	baseURL, path := parseURL(rawURL)
	svc := newService(baseURL, headerMap(headers), timeout, logger(cmd))
	formatter := output.NewFormatter(verbose, noColor)

	d := request.New(method, request.Path(path))
	if data != "" {
		body, err := dynamic.Parse([]byte(data))
		if err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
		if body.Kind() != dynamic.Object {
			return fmt.Errorf("--data must be a JSON object")
		}
		fields := body.ObjectValue()
		d = d.WithBody(request.DynamicBody(fields))
	}

	if verbose {
		fmt.Print(formatter.FormatRequest(string(method), baseURL+path, nil))
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
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{postCmd, putCmd} {
		cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
		cmd.Flags().StringP("data", "d", "", "JSON object to send as the request body")
		cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
		cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
		cmd.Flags().Bool("no-color", false, "Disable colored output")
	}
}
