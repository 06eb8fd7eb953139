package list_files

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// RecentLimit is the size of the recent uploads list.
const RecentLimit = 10

// Request contains filtering parameters. Empty fields do not filter.
type Request struct {
	Province   string
	Commodity  string // commodity display name
	Month      string
	Week       string
	UploadedBy string
	Search     string // case-insensitive match on file name or commodity
	Limit      int
	Recent     bool // the latest RecentLimit uploads
}

// Query handles the list files query use case.
type Query struct {
	files contracts.FileRepository
}

// NewQuery creates a new list files query.
func NewQuery(files contracts.FileRepository) *Query {
	return &Query{
		files: files,
	}
}

// Execute lists sheets, most recently uploaded first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.PriceDocument, error) {
	filter := contracts.FileFilter{
		CommodityDisplay: req.Commodity,
		UploadedBy:       req.UploadedBy,
		Limit:            req.Limit,
	}
	if req.Recent {
		filter.Limit = RecentLimit
	}

	if strings.TrimSpace(req.Month) != "" {
		month, err := domain.ParseMonth(req.Month)
		if err != nil {
			return nil, err
		}
		filter.Month = month
	}
	if strings.TrimSpace(req.Week) != "" {
		week, err := domain.ParseWeek(req.Week)
		if err != nil {
			return nil, err
		}
		filter.Week = &week
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	limit := filter.Limit
	if search != "" {
		// the limit applies to matches, not to the listing
		filter.Limit = 0
	}

	docs, err := q.files.List(ctx, req.Province, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	if search == "" {
		return docs, nil
	}

	out := make([]*domain.PriceDocument, 0, len(docs))
	for _, doc := range docs {
		if !matches(doc, search) {
			continue
		}
		out = append(out, doc)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func matches(doc *domain.PriceDocument, search string) bool {
	return strings.Contains(strings.ToLower(doc.FileName()), search) ||
		strings.Contains(strings.ToLower(doc.CommodityDisplay()), search)
}
