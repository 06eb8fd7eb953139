package repo

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
)

// ReportArchiveGCS stores report artifacts in a Cloud Storage bucket.
type ReportArchiveGCS struct {
	client *storage.Client
	bucket string
}

// NewReportArchiveGCS creates a new ReportArchiveGCS.
func NewReportArchiveGCS(client *storage.Client, bucket string) contracts.ReportArchive {
	return &ReportArchiveGCS{client: client, bucket: strings.TrimSpace(bucket)}
}

// Put uploads data and returns its gs:// location.
func (a *ReportArchiveGCS) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write gs://%s/%s: %w", a.bucket, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize gs://%s/%s: %w", a.bucket, name, err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, name), nil
}
