package m_baseline

import (
	"time"

	"cloud.google.com/go/firestore"
)

// Collection and field names for provinces/{province}/baseline/{docId}.
const (
	ProvincesCollection = "provinces"
	CollectionName      = "baseline"

	Commodity        = "commodity"
	CommodityDisplay = "commodityDisplay"
	LastModified     = "lastModified"
)

// Data is the stored shape of a baseline table.
type Data struct {
	Commodity        string    `firestore:"commodity"`
	CommodityDisplay string    `firestore:"commodityDisplay"`
	Province         string    `firestore:"province"`
	Year             int64     `firestore:"year"`
	Products         []Product `firestore:"products"`
	CreatedAt        time.Time `firestore:"createdAt"`
	LastModified     time.Time `firestore:"lastModified"`
}

// Product is one baseline row. Each month key holds either a number (monthly
// provinces) or a map of week label to number (weekly provinces).
type Product struct {
	ProductID   string                 `firestore:"productId"`
	ProductName string                 `firestore:"productName"`
	Unit        string                 `firestore:"unit"`
	Prices      map[string]interface{} `firestore:"prices"`
}

// Model locates baseline documents.
type Model struct {
	client *firestore.Client
}

// NewModel creates a new Model instance.
func NewModel(client *firestore.Client) *Model {
	return &Model{client: client}
}

// Collection returns provinces/{province}/baseline.
func (m *Model) Collection(province string) *firestore.CollectionRef {
	return m.client.Collection(ProvincesCollection).Doc(province).Collection(CollectionName)
}
