// Package commands holds the CLI subcommands added to the PocketBase root
// command.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"estimatetracker/collections"
	"estimatetracker/config"
	"estimatetracker/estimates"
	"estimatetracker/services"
	"estimatetracker/store"
)

// ErrUnknownFormat is returned for an export format other than xlsx or pdf.
var ErrUnknownFormat = errors.New("unknown export format: want xlsx or pdf")

// normalizeFormat maps accepted spellings to "xlsx" or "pdf".
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "xlsx", "excel":
		return "xlsx", nil
	case "pdf":
		return "pdf", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Export renders the stored estimate id in format and writes it to w. It
// returns the suggested file name.
func Export(ctx context.Context, st estimates.Store, id, format, currency string, w io.Writer) (string, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return "", err
	}

	doc, err := st.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load estimate %s: %w", id, err)
	}

	data := services.BuildExportData(doc, currency)
	var body []byte
	if format == "pdf" {
		body, err = services.GeneratePDF(data)
	} else {
		body, err = services.GenerateExcel(data)
	}
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", format, err)
	}

	if _, err := w.Write(body); err != nil {
		return "", fmt.Errorf("write %s: %w", format, err)
	}
	return services.ExportFilename(doc, format), nil
}

// NewExportCommand returns "export <estimate-id>", which writes one stored
// estimate as a spreadsheet or PDF. Without --out the file is named after the
// estimate version in the working directory.
func NewExportCommand(app core.App, cfg config.Config) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <estimate-id>",
		Short: "Export a stored estimate to xlsx or pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := normalizeFormat(format); err != nil {
				return err
			}
			collections.Setup(app)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var buf bytes.Buffer
			name, err := Export(ctx, store.NewEstimateStore(app), args[0], format, cfg.Currency, &buf)
			if err != nil {
				return err
			}

			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported estimate %s to %s\n", args[0], out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "output format: xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default estimate-<version>.<format>)")
	return cmd
}
