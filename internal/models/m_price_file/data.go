package m_price_file

import (
	"time"

	"cloud.google.com/go/firestore"
)

// Data is the stored shape of a price sheet. Prices are keyed by the store
// index rendered as a string ("0", "1", ...); a nil entry was not surveyed.
type Data struct {
	FileName          string     `firestore:"fileName"`
	Commodity         string     `firestore:"commodity"`
	CommodityDisplay  string     `firestore:"commodityDisplay"`
	Month             string     `firestore:"month"`
	Week              string     `firestore:"week"`
	Year              int64      `firestore:"year,omitempty"`
	Stores            []string   `firestore:"stores"`
	Categories        []Category `firestore:"categories"`
	UploadedBy        string     `firestore:"uploadedBy"`
	UploadedByEmail   string     `firestore:"uploadedByEmail"`
	UploadedAt        time.Time  `firestore:"uploadedAt"`
	Province          string     `firestore:"province"`
	LastModified      time.Time  `firestore:"lastModified"`
	IsCustomCommodity bool       `firestore:"isCustomCommodity"`
}

// Category is an embedded category of a sheet.
type Category struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Products  []Product `firestore:"products"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// Product is an embedded product row of a sheet.
type Product struct {
	ID              string              `firestore:"id"`
	Name            string              `firestore:"name"`
	Unit            string              `firestore:"unit"`
	Prices          map[string]*float64 `firestore:"prices"`
	PrevailingPrice *float64            `firestore:"prevailingPrice"`
	CreatedAt       time.Time           `firestore:"createdAt"`
}

// Model locates sheet documents.
type Model struct {
	client *firestore.Client
}

// NewModel creates a new Model instance.
func NewModel(client *firestore.Client) *Model {
	return &Model{client: client}
}

// Collection returns provinces/{province}/files.
func (m *Model) Collection(province string) *firestore.CollectionRef {
	return m.client.Collection(ProvincesCollection).Doc(province).Collection(CollectionName)
}
