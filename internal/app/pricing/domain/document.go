package domain

import (
	"strings"
	"time"
)

// PriceDocument is the aggregate root for one uploaded price sheet: a commodity
// surveyed across an ordered list of stores for one period.
type PriceDocument struct {
	id                string
	fileName          string
	commodity         string
	commodityDisplay  string
	isCustomCommodity bool
	period            Period
	stores            []string
	categories        []*Category
	province          string
	uploadedBy        string
	uploadedByEmail   string
	uploadedAt        time.Time
	lastModified      time.Time

	// Change tracking for edit use cases
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// DocumentParams carries the submitted content of a new price sheet.
type DocumentParams struct {
	FileName          string
	Commodity         string
	CommodityDisplay  string
	IsCustomCommodity bool
	Period            Period
	Stores            []string
	Categories        []*Category
	Province          string
	UploadedBy        string
	UploadedByEmail   string
}

// DocumentState is the full persisted state used to reconstruct a document.
type DocumentState struct {
	ID                string
	FileName          string
	Commodity         string
	CommodityDisplay  string
	IsCustomCommodity bool
	Period            Period
	Stores            []string
	Categories        []*Category
	Province          string
	UploadedBy        string
	UploadedByEmail   string
	UploadedAt        time.Time
	LastModified      time.Time
}

// Revision is the editable content of an existing document.
type Revision struct {
	FileName   string
	Period     Period
	Stores     []string
	Categories []*Category
}

// NewPriceDocument validates a submission and creates the aggregate. The id is
// derived from the file name, so resubmitting the same name targets the same document.
func NewPriceDocument(params DocumentParams, now time.Time) (*PriceDocument, error) {
	fileName := strings.TrimSpace(params.FileName)
	if fileName == "" || SanitizeID(fileName) == "" {
		return nil, ErrEmptyFileName
	}

	commodity := strings.TrimSpace(params.Commodity)
	display := strings.TrimSpace(params.CommodityDisplay)
	if params.IsCustomCommodity {
		if display == "" {
			return nil, ErrEmptyCustomCommodity
		}
		commodity = CommodityKey(display)
	} else {
		if commodity == "" {
			return nil, ErrEmptyCommodity
		}
		if display == "" {
			display = commodity
		}
	}

	truncateStores(params.Categories, len(params.Stores))
	if err := validateContent(params.Province, params.Period, params.Categories); err != nil {
		return nil, err
	}

	d := &PriceDocument{
		id:                SanitizeID(fileName),
		fileName:          fileName,
		commodity:         commodity,
		commodityDisplay:  display,
		isCustomCommodity: params.IsCustomCommodity,
		period:            params.Period,
		stores:            copyStrings(params.Stores),
		categories:        params.Categories,
		province:          params.Province,
		uploadedBy:        params.UploadedBy,
		uploadedByEmail:   params.UploadedByEmail,
		uploadedAt:        now,
		lastModified:      now,
		changes:           NewChangeTracker(),
		events:            make([]DomainEvent, 0),
	}

	d.changes.MarkDirty(FieldFileName)
	d.changes.MarkDirty(FieldPeriod)
	d.changes.MarkDirty(FieldStores)
	d.changes.MarkDirty(FieldCategories)
	d.changes.MarkDirty(FieldPrices)

	d.recordEvent(&FileSubmittedEvent{
		FileID:           d.id,
		Province:         d.province,
		CommodityDisplay: d.commodityDisplay,
		Period:           d.period.String(),
		UploadedBy:       d.uploadedBy,
		SubmittedAt:      now,
	})
	for _, c := range d.categories {
		for _, p := range c.products {
			if pp := p.PrevailingPrice(); pp != nil {
				d.recordPriceChange(c, p, nil, pp, d.uploadedBy, now)
			}
		}
	}

	return d, nil
}

// ReconstructPriceDocument reconstitutes a document from storage.
func ReconstructPriceDocument(s DocumentState) *PriceDocument {
	return &PriceDocument{
		id:                s.ID,
		fileName:          s.FileName,
		commodity:         s.Commodity,
		commodityDisplay:  s.CommodityDisplay,
		isCustomCommodity: s.IsCustomCommodity,
		period:            s.Period,
		stores:            copyStrings(s.Stores),
		categories:        s.Categories,
		province:          s.Province,
		uploadedBy:        s.UploadedBy,
		uploadedByEmail:   s.UploadedByEmail,
		uploadedAt:        s.UploadedAt,
		lastModified:      s.LastModified,
		changes:           NewChangeTracker(),
		events:            make([]DomainEvent, 0),
	}
}

// Getters
func (d *PriceDocument) ID() string                  { return d.id }
func (d *PriceDocument) FileName() string            { return d.fileName }
func (d *PriceDocument) Commodity() string           { return d.commodity }
func (d *PriceDocument) CommodityDisplay() string    { return d.commodityDisplay }
func (d *PriceDocument) IsCustomCommodity() bool     { return d.isCustomCommodity }
func (d *PriceDocument) Period() Period              { return d.period }
func (d *PriceDocument) Stores() []string            { return copyStrings(d.stores) }
func (d *PriceDocument) Province() string            { return d.province }
func (d *PriceDocument) UploadedBy() string          { return d.uploadedBy }
func (d *PriceDocument) UploadedByEmail() string     { return d.uploadedByEmail }
func (d *PriceDocument) UploadedAt() time.Time       { return d.uploadedAt }
func (d *PriceDocument) LastModified() time.Time     { return d.lastModified }
func (d *PriceDocument) Changes() *ChangeTracker     { return d.changes }
func (d *PriceDocument) DomainEvents() []DomainEvent { return d.events }

// Categories returns the document's categories in stored order.
func (d *PriceDocument) Categories() []*Category {
	out := make([]*Category, len(d.categories))
	copy(out, d.categories)
	return out
}

// CategoryByName returns the first category with this exact name.
func (d *PriceDocument) CategoryByName(name string) *Category {
	for _, c := range d.categories {
		if c.name == name {
			return c
		}
	}
	return nil
}

// CategoryByID returns the category with id, or nil.
func (d *PriceDocument) CategoryByID(id string) *Category {
	for _, c := range d.categories {
		if c.id == id {
			return c
		}
	}
	return nil
}

// EnsureOwner returns ErrNotOwner unless uid uploaded the document.
func (d *PriceDocument) EnsureOwner(uid string) error {
	if uid == "" || uid != d.uploadedBy {
		return ErrNotOwner
	}
	return nil
}

// Revise replaces the editable content. Attribution fields (uploader and upload
// time) are preserved; lastModified is set to now.
func (d *PriceDocument) Revise(rev Revision, editorUID string, now time.Time) error {
	if err := d.EnsureOwner(editorUID); err != nil {
		return err
	}

	fileName := strings.TrimSpace(rev.FileName)
	if fileName == "" {
		return ErrEmptyFileName
	}
	truncateStores(rev.Categories, len(rev.Stores))
	if err := validateContent(d.province, rev.Period, rev.Categories); err != nil {
		return err
	}

	before := d.prevailingByKey()

	if fileName != d.fileName {
		d.fileName = fileName
		d.changes.MarkDirty(FieldFileName)
	}
	if rev.Period != d.period {
		d.period = rev.Period
		d.changes.MarkDirty(FieldPeriod)
	}
	if !equalStrings(rev.Stores, d.stores) {
		d.stores = copyStrings(rev.Stores)
		d.changes.MarkDirty(FieldStores)
	}
	d.categories = rev.Categories
	d.changes.MarkDirty(FieldCategories)

	d.recordPriceChanges(before, editorUID, now)
	d.lastModified = now

	d.recordEvent(&FileEditedEvent{
		FileID:        d.id,
		Province:      d.province,
		ChangedFields: d.changes.DirtyFields(),
		EditedBy:      editorUID,
		EditedAt:      now,
	})

	return nil
}

// RemoveStore deletes the store at index and reindexes every product's prices
// so that higher indexes shift down by one.
func (d *PriceDocument) RemoveStore(index int, editorUID string, now time.Time) error {
	if err := d.EnsureOwner(editorUID); err != nil {
		return err
	}
	if index < 0 || index >= len(d.stores) {
		return ErrStoreIndexOutOfRange
	}

	before := d.prevailingByKey()
	removed := d.stores[index]

	d.stores = append(d.stores[:index:index], d.stores[index+1:]...)
	for _, c := range d.categories {
		for _, p := range c.products {
			p.removeStore(index)
		}
	}
	d.changes.MarkDirty(FieldStores)
	d.changes.MarkDirty(FieldPrices)

	d.recordPriceChanges(before, editorUID, now)
	d.lastModified = now

	d.recordEvent(&StoreRemovedEvent{
		FileID:    d.id,
		Province:  d.province,
		StoreName: removed,
		Index:     index,
		RemovedBy: editorUID,
		RemovedAt: now,
	})

	return nil
}

// SetPrice updates one quotation and recomputes the product's prevailing price.
func (d *PriceDocument) SetPrice(categoryID, productID string, storeIndex int, price *Money, editorUID string, now time.Time) error {
	if err := d.EnsureOwner(editorUID); err != nil {
		return err
	}
	if storeIndex < 0 || storeIndex >= len(d.stores) {
		return ErrStoreIndexOutOfRange
	}
	c := d.CategoryByID(categoryID)
	if c == nil {
		return ErrCategoryNotFound
	}
	p := c.ProductByID(productID)
	if p == nil {
		return ErrProductNotFound
	}

	old := p.PrevailingPrice()
	p.SetPrice(storeIndex, price)
	d.changes.MarkDirty(FieldPrices)
	if next := p.PrevailingPrice(); !SameAs(old, next) {
		d.recordPriceChange(c, p, old, next, editorUID, now)
	}
	d.lastModified = now
	return nil
}

// MarkDeleted checks ownership and records the deletion event.
func (d *PriceDocument) MarkDeleted(editorUID string, now time.Time) error {
	if err := d.EnsureOwner(editorUID); err != nil {
		return err
	}
	d.recordEvent(&FileDeletedEvent{
		FileID:    d.id,
		Province:  d.province,
		DeletedBy: editorUID,
		DeletedAt: now,
	})
	return nil
}

// ClearEvents clears all recorded domain events (called after publishing).
func (d *PriceDocument) ClearEvents() {
	d.events = make([]DomainEvent, 0)
}

func (d *PriceDocument) prevailingByKey() map[string]*Money {
	out := make(map[string]*Money)
	for _, c := range d.categories {
		for _, p := range c.products {
			out[ProductKey(c.id, p.id)] = p.PrevailingPrice()
		}
	}
	return out
}

func (d *PriceDocument) recordPriceChanges(before map[string]*Money, by string, now time.Time) {
	for _, c := range d.categories {
		for _, p := range c.products {
			old := before[ProductKey(c.id, p.id)]
			next := p.PrevailingPrice()
			if !SameAs(old, next) {
				d.recordPriceChange(c, p, old, next, by, now)
			}
		}
	}
}

func (d *PriceDocument) recordPriceChange(c *Category, p *Product, old, next *Money, by string, now time.Time) {
	d.recordEvent(&PrevailingPriceChangedEvent{
		FileID:      d.id,
		Province:    d.province,
		ProductKey:  ProductKey(c.id, p.id),
		ProductName: p.name,
		Unit:        p.unit,
		OldPrice:    old,
		NewPrice:    next,
		ChangedBy:   by,
		ChangedAt:   now,
	})
}

// truncateStores removes prices pointing past the end of the store list.
func truncateStores(categories []*Category, storeCount int) {
	for _, c := range categories {
		for _, p := range c.products {
			p.truncateStores(storeCount)
		}
	}
}

// recordEvent adds a domain event to the list of events.
func (d *PriceDocument) recordEvent(event DomainEvent) {
	d.events = append(d.events, event)
}

// validateContent enforces the submission rules shared by create and edit.
func validateContent(province string, period Period, categories []*Category) error {
	if period.Month == 0 {
		return ErrMissingMonth
	}
	if LookupProvince(province).IsWeekly() && !period.HasWeek() {
		return ErrMissingWeek
	}
	if len(categories) == 0 {
		return ErrNoCategories
	}
	for _, c := range categories {
		for _, p := range c.products {
			if p.HasPositivePrice() {
				return nil
			}
		}
	}
	return ErrNoPrices
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
