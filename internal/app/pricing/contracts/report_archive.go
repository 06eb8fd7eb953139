package contracts

import "context"

// ReportArchive stores rendered report artifacts.
type ReportArchive interface {
	// Put writes data under name and returns the object location.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}
