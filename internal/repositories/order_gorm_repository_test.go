package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"maison/internal/models"
	"maison/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database. TranslateError is on,
// matching production, so duplicate keys surface as gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.StoreLocation{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.SiteSetting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	category := models.Category{Name: "Category for " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	product := models.Product{Name: name, Price: price, Stock: stock, CategoryID: category.ID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return &product
}

func currentStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("failed to reload product %d: %v", productID, err)
	}
	return product.Stock
}

func TestOrderPlace_DeductsStockAndSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Velvet Sofa", 100, 10)

	userID := uint(1)
	order, err := repo.Place(
		&models.Order{Status: "completed", UserID: &userID, PaymentMethod: "cod"},
		[]models.OrderLine{{ProductID: product.ID, Quantity: 3}},
	)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, float64(300), order.TotalAmount)
	assert.Equal(t, "completed", order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, float64(100), order.Items[0].PriceAtTime)
	assert.Equal(t, 7, currentStock(t, db, product.ID))

	// A later price change must not alter the historical total
	err = db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 150).Error
	assert.NoError(t, err)

	reloaded, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(300), reloaded.TotalAmount)
	assert.Equal(t, float64(100), reloaded.Items[0].PriceAtTime)
}

func TestOrderPlace_InsufficientStock(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Oak Table", 250, 5)

	_, err := repo.Place(
		&models.Order{Status: "completed"},
		[]models.OrderLine{{ProductID: product.ID, Quantity: 6}},
	)
	var noStock *repositories.InsufficientStockError
	assert.ErrorAs(t, err, &noStock)
	assert.Equal(t, product.ID, noStock.ProductID)
	assert.Equal(t, 6, noStock.Requested)
	assert.Equal(t, 5, noStock.Available)

	// Nothing is persisted on failure
	assert.Equal(t, 5, currentStock(t, db, product.ID))
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestOrderPlace_UnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Velvet Sofa", 100, 10)

	// The first line would succeed; the second names a missing product,
	// so the first line's deduction must roll back too.
	_, err := repo.Place(
		&models.Order{Status: "completed"},
		[]models.OrderLine{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: 9999, Quantity: 1},
		},
	)
	var notFound *repositories.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(9999), notFound.ProductID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, 10, currentStock(t, db, product.ID))
	var itemCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestOrderPlace_MultipleLines(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	sofa := seedProduct(t, db, "Velvet Sofa", 100, 10)
	table := seedProduct(t, db, "Oak Table", 250, 5)

	order, err := repo.Place(
		&models.Order{Status: "completed"},
		[]models.OrderLine{
			{ProductID: sofa.ID, Quantity: 2},
			{ProductID: table.ID, Quantity: 1},
		},
	)
	assert.NoError(t, err)
	assert.Equal(t, float64(450), order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 8, currentStock(t, db, sofa.ID))
	assert.Equal(t, 4, currentStock(t, db, table.ID))
}

func TestOrderPlace_Anonymous(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Velvet Sofa", 100, 10)

	order, err := repo.Place(
		&models.Order{Status: "completed", CustomerEmail: "guest@example.com"},
		[]models.OrderLine{{ProductID: product.ID, Quantity: 1}},
	)
	assert.NoError(t, err)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "guest@example.com", order.CustomerEmail)
}

func TestOrderGetAll_FiltersByUser(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Velvet Sofa", 100, 10)

	alice := uint(1)
	bob := uint(2)
	for _, userID := range []*uint{&alice, &alice, &bob, nil} {
		_, err := repo.Place(
			&models.Order{Status: "completed", UserID: userID},
			[]models.OrderLine{{ProductID: product.ID, Quantity: 1}},
		)
		assert.NoError(t, err)
	}

	all, err := repo.GetAll(nil, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
	// Newest first
	assert.Greater(t, all[0].ID, all[1].ID)

	aliceOrders, err := repo.GetAll(&alice, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, aliceOrders, 2)
	for _, order := range aliceOrders {
		assert.Equal(t, alice, *order.UserID)
	}
}

func TestProductInUse(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	ordered := seedProduct(t, db, "Velvet Sofa", 100, 10)
	untouched := seedProduct(t, db, "Oak Table", 250, 5)

	_, err := orderRepo.Place(
		&models.Order{Status: "completed"},
		[]models.OrderLine{{ProductID: ordered.ID, Quantity: 1}},
	)
	assert.NoError(t, err)

	inUse, err := productRepo.InUse(ordered.ID)
	assert.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = productRepo.InUse(untouched.ID)
	assert.NoError(t, err)
	assert.False(t, inUse)
}

func TestWishlistRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMWishlistRepository(db)
	product := seedProduct(t, db, "Velvet Sofa", 100, 10)

	entry := &models.Wishlist{UserID: 1, ProductID: product.ID}
	assert.NoError(t, repo.Add(entry))
	assert.NotNil(t, entry.Product)
	assert.Equal(t, product.Name, entry.Product.Name)

	// The (user, product) pair is unique
	err := repo.Add(&models.Wishlist{UserID: 1, ProductID: product.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// A different user may save the same product
	assert.NoError(t, repo.Add(&models.Wishlist{UserID: 2, ProductID: product.ID}))

	entries, err := repo.GetByUser(1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.NoError(t, repo.Remove(1, product.ID))
	err = repo.Remove(1, product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSettingRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMSettingRepository(db)

	err := repo.Upsert([]models.SiteSetting{
		{Key: "site_title", Value: "Maison"},
		{Key: "currency", Value: "AED"},
	})
	assert.NoError(t, err)

	// Upserting an existing key replaces its value without error
	err = repo.Upsert([]models.SiteSetting{{Key: "site_title", Value: "Maison Home"}})
	assert.NoError(t, err)

	settings, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, settings, 2)
	byKey := make(map[string]string)
	for _, s := range settings {
		byKey[s.Key] = s.Value
	}
	assert.Equal(t, "Maison Home", byKey["site_title"])
	assert.Equal(t, "AED", byKey["currency"])
}

func TestUserRepository_ClearsResetToken(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	code := "123456"
	user := &models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "hash",
		IsActive:       true,
		ResetToken:     &code,
	}
	assert.NoError(t, repo.Create(user))

	// Setting the pointer to nil must write NULL, not keep the old value
	user.ResetToken = nil
	assert.NoError(t, repo.Update(user))

	reloaded, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Nil(t, reloaded.ResetToken)

	// Duplicate usernames are rejected by the unique index
	err = repo.Create(&models.User{Username: "alice", Email: "other@example.com", HashedPassword: "hash"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}
