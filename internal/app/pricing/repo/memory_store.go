package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/light-bringer/pricetracker/internal/app/pricing/contracts"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
	"github.com/light-bringer/pricetracker/internal/models/m_baseline"
	"github.com/light-bringer/pricetracker/internal/models/m_price_file"
	"github.com/light-bringer/pricetracker/internal/models/m_template"
	"github.com/light-bringer/pricetracker/internal/models/m_user"
)

// MemoryStore keeps the Firestore document tree in process. Documents are
// held in their stored shape, so every read returns a fresh aggregate just
// like a Firestore round trip. It backs STORE_BACKEND=memory and tests.
type MemoryStore struct {
	mu  sync.RWMutex
	seq int64

	files      map[string]map[string]memFile
	baselines  map[string]map[string]*m_baseline.Data
	stores     map[string]map[string]m_template.Store
	categories map[string]map[string]m_template.Category // key: province/commodity/category
	products   map[string]map[string]m_template.Product  // key: province/commodity/category
	users      map[string]map[string]m_user.User
	userCounts map[string]int
	admins     map[string]bool
	objects    map[string][]byte
}

type memFile struct {
	seq  int64
	data *m_price_file.Data
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files:      make(map[string]map[string]memFile),
		baselines:  make(map[string]map[string]*m_baseline.Data),
		stores:     make(map[string]map[string]m_template.Store),
		categories: make(map[string]map[string]m_template.Category),
		products:   make(map[string]map[string]m_template.Product),
		users:      make(map[string]map[string]m_user.User),
		userCounts: make(map[string]int),
		admins:     make(map[string]bool),
		objects:    make(map[string][]byte),
	}
}

// Files returns the FileRepository view.
func (s *MemoryStore) Files() contracts.FileRepository { return memFiles{s} }

// Baselines returns the BaselineRepository view.
func (s *MemoryStore) Baselines() contracts.BaselineRepository { return memBaselines{s} }

// Templates returns the TemplateRepository view.
func (s *MemoryStore) Templates() contracts.TemplateRepository { return memTemplates{s} }

// Users returns the UserDirectory view.
func (s *MemoryStore) Users() contracts.UserDirectory { return memUsers{s} }

// Archive returns the ReportArchive view.
func (s *MemoryStore) Archive() contracts.ReportArchive { return memArchive{s} }

// AddAdmin grants read access to every province.
func (s *MemoryStore) AddAdmin(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[uid] = true
}

// UserCount returns the province's stored user count.
func (s *MemoryStore) UserCount(province string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userCounts[province]
}

// Object returns an archived artifact.
func (s *MemoryStore) Object(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[name]
	return data, ok
}

func nested[V any](m map[string]map[string]V, key string) map[string]V {
	inner, ok := m[key]
	if !ok {
		inner = make(map[string]V)
		m[key] = inner
	}
	return inner
}

// --- files ---

type memFiles struct{ s *MemoryStore }

func (r memFiles) Get(ctx context.Context, province, fileID string) (*domain.PriceDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.files[province][fileID]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return dataToFile(fileID, f.data)
}

func (r memFiles) Upsert(ctx context.Context, doc *domain.PriceDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.seq++
	nested(r.s.files, doc.Province())[doc.ID()] = memFile{seq: r.s.seq, data: fileToData(doc)}
	return nil
}

func (r memFiles) Delete(ctx context.Context, province, fileID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.files[province], fileID)
	return nil
}

func (r memFiles) List(ctx context.Context, province string, filter contracts.FileFilter) ([]*domain.PriceDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type entry struct {
		id string
		f  memFile
	}
	var matched []entry
	for id, f := range r.s.files[province] {
		d := f.data
		if filter.CommodityDisplay != "" && d.CommodityDisplay != filter.CommodityDisplay {
			continue
		}
		if filter.Month != 0 && d.Month != filter.Month.String() {
			continue
		}
		if filter.UploadedBy != "" && d.UploadedBy != filter.UploadedBy {
			continue
		}
		matched = append(matched, entry{id: id, f: f})
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i].f, matched[j].f
		if !a.data.UploadedAt.Equal(b.data.UploadedAt) {
			return a.data.UploadedAt.After(b.data.UploadedAt)
		}
		return a.seq < b.seq
	})

	var docs []*domain.PriceDocument
	for _, e := range matched {
		doc, err := dataToFile(e.id, e.f.data)
		if err != nil {
			return nil, err
		}
		if !matchesWeek(doc, filter.Week) {
			continue
		}
		docs = append(docs, doc)
		if filter.Limit > 0 && len(docs) == filter.Limit {
			break
		}
	}
	return docs, nil
}

// --- baselines ---

type memBaselines struct{ s *MemoryStore }

func (r memBaselines) Get(ctx context.Context, province, baselineID string) (*domain.BaselineDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	data, ok := r.s.baselines[province][baselineID]
	if !ok {
		return nil, domain.ErrBaselineNotFound
	}
	return dataToBaseline(baselineID, data)
}

func (r memBaselines) Exists(ctx context.Context, province, baselineID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.baselines[province][baselineID]
	return ok, nil
}

func (r memBaselines) Upsert(ctx context.Context, b *domain.BaselineDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	nested(r.s.baselines, b.Province())[b.ID()] = baselineToData(b)
	return nil
}

func (r memBaselines) Delete(ctx context.Context, province, baselineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.baselines[province], baselineID)
	return nil
}

func (r memBaselines) List(ctx context.Context, province string) ([]*domain.BaselineDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.baselines[province]))
	for id := range r.s.baselines[province] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.s.baselines[province][ids[i]], r.s.baselines[province][ids[j]]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		return ids[i] < ids[j]
	})

	out := make([]*domain.BaselineDocument, 0, len(ids))
	for _, id := range ids {
		b, err := dataToBaseline(id, r.s.baselines[province][id])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// --- templates ---

type memTemplates struct{ s *MemoryStore }

func (r memTemplates) ListStores(ctx context.Context, province string) ([]contracts.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]contracts.Store, 0, len(r.s.stores[province]))
	for id, st := range r.s.stores[province] {
		out = append(out, contracts.Store{ID: id, Name: st.Name, CreatedAt: st.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memTemplates) UpsertStore(ctx context.Context, province string, store contracts.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	nested(r.s.stores, province)[store.ID] = m_template.Store{Name: store.Name, CreatedAt: store.CreatedAt}
	return nil
}

func (r memTemplates) ListCategories(ctx context.Context, province, commodity string) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cats := r.s.categories[province+"/"+commodity]
	ids := make([]string, 0, len(cats))
	for id := range cats {
		ids = append(ids, id)
	}
	// Map order stands in for Firestore's unspecified order.
	out := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		c := cats[id]
		out = append(out, domain.ReconstructCategory(id, c.Name, nil, c.CreatedAt))
	}
	return out, nil
}

func (r memTemplates) ListProducts(ctx context.Context, province, commodity, categoryID string) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	prods := r.s.products[province+"/"+commodity+"/"+categoryID]
	out := make([]*domain.Product, 0, len(prods))
	for id, p := range prods {
		out = append(out, domain.ReconstructProduct(id, p.Name, p.Unit, nil, p.CreatedAt))
	}
	return out, nil
}

func (r memTemplates) UpsertCategory(ctx context.Context, province, commodity string, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	nested(r.s.categories, province+"/"+commodity)[category.ID()] = m_template.Category{
		Name:      category.Name(),
		CreatedAt: category.CreatedAt(),
	}
	return nil
}

func (r memTemplates) UpsertProduct(ctx context.Context, province, commodity, categoryID string, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	nested(r.s.products, province+"/"+commodity+"/"+categoryID)[product.ID()] = m_template.Product{
		Name:      product.Name(),
		Unit:      product.Unit(),
		CreatedAt: product.CreatedAt(),
	}
	return nil
}

// --- users ---

type memUsers struct{ s *MemoryStore }

func (r memUsers) IsAdmin(ctx context.Context, uid string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.admins[uid], nil
}

func (r memUsers) IsMember(ctx context.Context, province, uid string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[province][uid]
	return ok, nil
}

func (r memUsers) Enroll(ctx context.Context, province string, identity contracts.Identity, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := nested(r.s.users, province)
	createdAt := now
	if existing, ok := users[identity.UID]; ok {
		createdAt = existing.CreatedAt
	}
	users[identity.UID] = m_user.User{
		UID:           identity.UID,
		Email:         identity.Email,
		Province:      province,
		EmailVerified: identity.EmailVerified,
		CreatedAt:     createdAt,
	}
	r.s.userCounts[province] = len(users)
	return nil
}

// --- archive ---

type memArchive struct{ s *MemoryStore }

func (a memArchive) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	a.s.objects[name] = append([]byte(nil), data...)
	return fmt.Sprintf("mem://%s", name), nil
}
