package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeID derives a document id from a display name: lowercased,
// non-alphanumeric runs collapsed to a single hyphen, edge hyphens trimmed.
func SanitizeID(name string) string {
	id := nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(id, "-")
}

// CommodityKey is the stored commodity identifier for a display name.
func CommodityKey(display string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(display)), "_")
}

// BaselineDocID is the id of the baseline document for a commodity and year.
func BaselineDocID(year int, commodityDisplay string) string {
	return strconv.Itoa(year) + "_" + whitespaceRun.ReplaceAllString(commodityDisplay, "_")
}
