package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/app/pricing/usecases/export_report"
	"github.com/light-bringer/pricetracker/internal/services"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the comparison workbook and summary of one sheet",
	Long: `Render the comparison workbook (.xlsx) and the summary document (.docx)
of one stored sheet and write both to a local directory.

Example:
  pricetracker report --province quirino --file rice-november --out ./reports`,
	RunE: runReport,
}

var (
	reportProvince string
	reportFile     string
	reportOut      string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportProvince, "province", "", "province id (required)")
	reportCmd.Flags().StringVar(&reportFile, "file", "", "sheet id (required)")
	reportCmd.Flags().StringVar(&reportOut, "out", ".", "output directory")
	_ = reportCmd.MarkFlagRequired("province")
	_ = reportCmd.MarkFlagRequired("file")
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, log, err := bootstrap("report")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, err := services.NewServiceOptions(ctx, cfg, log, newMetrics())
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer opts.Close()

	if err := os.MkdirAll(reportOut, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOut, err)
	}

	province := domain.LookupProvince(reportProvince).ID
	for _, format := range []export_report.Format{export_report.FormatXLSX, export_report.FormatDOCX} {
		artifact, err := opts.UseCases.ExportReport.Execute(ctx, &export_report.Request{
			Province: province,
			FileID:   reportFile,
			Format:   format,
		})
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", format, err)
		}

		dest := filepath.Join(reportOut, artifact.Name)
		if err := os.WriteFile(dest, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		log.Info("report written", zap.String("path", dest), zap.Int("bytes", len(artifact.Data)))
	}
	return nil
}
