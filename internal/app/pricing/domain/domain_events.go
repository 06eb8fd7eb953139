package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// aggregateID scopes an id to its province; file and baseline ids are only
// unique within one province.
func aggregateID(province, id string) string {
	return AggregatePrefix(province) + id
}

// AggregatePrefix is the leading part shared by every aggregate id of a province.
func AggregatePrefix(province string) string {
	return province + "/"
}

// FileSubmittedEvent is emitted when a price sheet is created or resubmitted.
type FileSubmittedEvent struct {
	FileID           string
	Province         string
	CommodityDisplay string
	Period           string
	UploadedBy       string
	SubmittedAt      time.Time
}

func (e *FileSubmittedEvent) EventType() string {
	return "file.submitted"
}

func (e *FileSubmittedEvent) AggregateID() string {
	return aggregateID(e.Province, e.FileID)
}

// FileEditedEvent is emitted when the owner replaces a sheet's content.
type FileEditedEvent struct {
	FileID        string
	Province      string
	ChangedFields []string
	EditedBy      string
	EditedAt      time.Time
}

func (e *FileEditedEvent) EventType() string {
	return "file.edited"
}

func (e *FileEditedEvent) AggregateID() string {
	return aggregateID(e.Province, e.FileID)
}

// StoreRemovedEvent is emitted when a store column is dropped from a sheet.
type StoreRemovedEvent struct {
	FileID    string
	Province  string
	StoreName string
	Index     int
	RemovedBy string
	RemovedAt time.Time
}

func (e *StoreRemovedEvent) EventType() string {
	return "file.store_removed"
}

func (e *StoreRemovedEvent) AggregateID() string {
	return aggregateID(e.Province, e.FileID)
}

// FileDeletedEvent is emitted when the owner deletes a sheet.
type FileDeletedEvent struct {
	FileID    string
	Province  string
	DeletedBy string
	DeletedAt time.Time
}

func (e *FileDeletedEvent) EventType() string {
	return "file.deleted"
}

func (e *FileDeletedEvent) AggregateID() string {
	return aggregateID(e.Province, e.FileID)
}

// PrevailingPriceChangedEvent is emitted for every product whose prevailing
// price changes, including the first price of a new sheet (OldPrice nil).
type PrevailingPriceChangedEvent struct {
	FileID      string
	Province    string
	ProductKey  string
	ProductName string
	Unit        string
	OldPrice    *Money
	NewPrice    *Money
	ChangedBy   string
	ChangedAt   time.Time
}

func (e *PrevailingPriceChangedEvent) EventType() string {
	return "file.prevailing_price.changed"
}

func (e *PrevailingPriceChangedEvent) AggregateID() string {
	return aggregateID(e.Province, e.FileID)
}

// BaselineSavedEvent is emitted when a baseline table is created or updated.
type BaselineSavedEvent struct {
	BaselineID       string
	Province         string
	CommodityDisplay string
	Year             int
	ProductCount     int
	SavedBy          string
	SavedAt          time.Time
}

func (e *BaselineSavedEvent) EventType() string {
	return "baseline.saved"
}

func (e *BaselineSavedEvent) AggregateID() string {
	return aggregateID(e.Province, e.BaselineID)
}

// BaselineDeletedEvent is emitted when a baseline table is removed.
type BaselineDeletedEvent struct {
	BaselineID string
	Province   string
	DeletedBy  string
	DeletedAt  time.Time
}

func (e *BaselineDeletedEvent) EventType() string {
	return "baseline.deleted"
}

func (e *BaselineDeletedEvent) AggregateID() string {
	return aggregateID(e.Province, e.BaselineID)
}
