package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/critique/internal/domain/share"
	"github.com/bryanwahyu/critique/internal/infra/client"
)

var (
	serverURL     string
	token         string
	designContext string
	shareReport   bool
	jsonOutput    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Critique a screenshot",
	Long: `Upload a screenshot to the critique API and print the annotations.

When the API cannot be reached a local heuristic critique is printed instead
and marked as mock.

Examples:
  critique analyze ./landing.png
  critique analyze ./checkout.png --context "mobile checkout" --share
  critique analyze ./poster.jpg --server https://api.example.com/make-server --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&serverURL, "server", "s", envOr("CRITIQUE_SERVER", "http://localhost:8080"), "API base URL, including any base path")
	analyzeCmd.Flags().StringVarP(&token, "token", "t", os.Getenv("CRITIQUE_TOKEN"), "Bearer token sent to the API")
	analyzeCmd.Flags().StringVarP(&designContext, "context", "c", "", "Optional hint about the design")
	analyzeCmd.Flags().BoolVar(&shareReport, "share", false, "Store the report and print its share id")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	image, err := readDataURL(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(serverURL, token)

	stopSpinner := startSpinner(" Analyzing " + args[0])
	start := time.Now()
	res := c.Analyze(ctx, image, designContext)
	stopSpinner()

	var shareID string
	if shareReport {
		shareID, err = c.Share(ctx, share.Report{
			"screenshot":   image,
			"annotations":  res.Annotations,
			"designType":   res.DesignType,
			"analysisMode": res.Mode,
		})
		if err != nil {
			return fmt.Errorf("share failed: %w", err)
		}
	}

	if jsonOutput {
		out := map[string]any{"result": res}
		if shareID != "" {
			out["shareId"] = shareID
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printResult(os.Stdout, res, time.Since(start))
	if shareID != "" {
		printShare(os.Stdout, shareID)
	}
	return nil
}

// readDataURL loads an image file as a base64 data URL.
func readDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("read image: %s is empty", path)
	}
	return toDataURL(data), nil
}

func toDataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// startSpinner shows progress on an interactive stderr and returns its stop func.
func startSpinner(suffix string) func() {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
