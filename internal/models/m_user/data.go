package m_user

import (
	"time"

	"cloud.google.com/go/firestore"
)

// Collection and field names for users and administrators.
const (
	ProvincesCollection = "provinces"
	UsersCollection     = "users"
	AdminCollection     = "admin"

	UserCount = "userCount"
)

// User is provinces/{province}/users/{uid}.
type User struct {
	UID           string    `firestore:"uid"`
	Email         string    `firestore:"email"`
	Province      string    `firestore:"province"`
	EmailVerified bool      `firestore:"emailVerified"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

// Model locates user documents.
type Model struct {
	client *firestore.Client
}

// NewModel creates a new Model instance.
func NewModel(client *firestore.Client) *Model {
	return &Model{client: client}
}

// Province returns provinces/{province}.
func (m *Model) Province(province string) *firestore.DocumentRef {
	return m.client.Collection(ProvincesCollection).Doc(province)
}

// Users returns provinces/{province}/users.
func (m *Model) Users(province string) *firestore.CollectionRef {
	return m.Province(province).Collection(UsersCollection)
}

// Admin returns admin/{uid}.
func (m *Model) Admin(uid string) *firestore.DocumentRef {
	return m.client.Collection(AdminCollection).Doc(uid)
}
