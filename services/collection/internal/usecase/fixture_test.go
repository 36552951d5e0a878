package usecase

import (
	"sync"
	"testing"
	"time"

	"collection-hub/pkg/logger"
	"collection-hub/pkg/models"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/cache"
	"collection-hub/services/collection/internal/repo/persistent"
	"collection-hub/services/collection/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) PublishCollectionEvent(routingKey string, event map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) has(routingKey string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == routingKey {
			return true
		}
	}
	return false
}

type workflowFixture struct {
	db          *gorm.DB
	store       persistent.Store
	catalog     CatalogUseCase
	reviews     ReviewUseCase
	collections CollectionUseCase
	publisher   *recordingPublisher

	typeID     string
	editorID   string
	reviewerID string
	tile       *models.Product
	throw      *models.Product
	vase       *models.Product
	lamp       *models.Product
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	db := testutil.NewDB(t)
	store := persistent.NewStore(db)
	log := logger.New()

	catalog, err := NewCatalogUseCase(store, log)
	require.NoError(t, err)

	publisher := &recordingPublisher{}

	return &workflowFixture{
		db:          db,
		store:       store,
		catalog:     catalog,
		reviews:     NewReviewUseCase(store, catalog, publisher, log),
		collections: NewCollectionUseCase(store, catalog, cache.NewCollectionCache(nil, time.Minute, log), publisher, log),
		publisher:   publisher,
		typeID:      testutil.SeedCollectionType(t, db, "Color Stories", "color-stories").ID,
		editorID:    testutil.SeedUser(t, db, "editor@example.com", models.RoleEditor).ID,
		reviewerID:  testutil.SeedUser(t, db, "reviewer@example.com", models.RoleReviewer).ID,
		tile:        testutil.SeedProduct(t, db, "Terracotta Tile", "terracotta-tile", models.ProductStatusPublished),
		throw:       testutil.SeedProduct(t, db, "Linen Throw", "linen-throw", models.ProductStatusPublished),
		vase:        testutil.SeedProduct(t, db, "Stoneware Vase", "stoneware-vase", models.ProductStatusPublished),
		lamp:        testutil.SeedProduct(t, db, "Prototype Lamp", "prototype-lamp", models.ProductStatusDraft),
	}
}

func (f *workflowFixture) input(name string, productIDs ...string) entity.CollectionInput {
	return entity.CollectionInput{
		Name:            name,
		Description:     "Seasonal selection",
		ImageURL:        "https://cdn.example.com/cover.jpg",
		BannerURL:       "https://cdn.example.com/banner.jpg",
		MarketingImages: []string{"https://cdn.example.com/m1.jpg", "https://cdn.example.com/m2.jpg"},
		IsFeatured:      true,
		TypeID:          f.typeID,
		ProductIDs:      productIDs,
	}
}

func (f *workflowFixture) count(t *testing.T, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}
