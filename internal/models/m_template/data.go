package m_template

import (
	"time"

	"cloud.google.com/go/firestore"
)

// Collection names of the per-province template tree.
const (
	ProvincesCollection   = "provinces"
	StoresCollection      = "stores"
	CommoditiesCollection = "commodities"
	CategoriesCollection  = "categories"
	ProductsCollection    = "products"

	CreatedAt = "createdAt"
)

// Store is provinces/{p}/stores/{storeId}.
type Store struct {
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// Category is provinces/{p}/commodities/{c}/categories/{categoryId}.
type Category struct {
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// Product is .../categories/{categoryId}/products/{productId}.
type Product struct {
	Name      string    `firestore:"name"`
	Unit      string    `firestore:"unit"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// Model locates template documents.
type Model struct {
	client *firestore.Client
}

// NewModel creates a new Model instance.
func NewModel(client *firestore.Client) *Model {
	return &Model{client: client}
}

func (m *Model) province(province string) *firestore.DocumentRef {
	return m.client.Collection(ProvincesCollection).Doc(province)
}

// Stores returns provinces/{province}/stores.
func (m *Model) Stores(province string) *firestore.CollectionRef {
	return m.province(province).Collection(StoresCollection)
}

// Categories returns provinces/{province}/commodities/{commodity}/categories.
func (m *Model) Categories(province, commodity string) *firestore.CollectionRef {
	return m.province(province).Collection(CommoditiesCollection).Doc(commodity).Collection(CategoriesCollection)
}

// Products returns the product collection of one category.
func (m *Model) Products(province, commodity, categoryID string) *firestore.CollectionRef {
	return m.Categories(province, commodity).Doc(categoryID).Collection(ProductsCollection)
}
