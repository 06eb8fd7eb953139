package m_price_history

// Table name constant
const TableName = "price_history"

// Field name constants for type-safe database access
const (
	HistoryID     = "history_id"
	Province      = "province"
	FileID        = "file_id"
	ProductKey    = "product_key"
	OldPrice      = "old_price"
	NewPrice      = "new_price"
	ChangedBy     = "changed_by"
	ChangedReason = "changed_reason"
	ChangedAt     = "changed_at"
)
