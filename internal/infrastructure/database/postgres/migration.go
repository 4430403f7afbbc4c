// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/artstore-backend/internal/domain/cart"
	"github.com/your-org/artstore-backend/internal/domain/order"
	"github.com/your-org/artstore-backend/internal/domain/product"
	"github.com/your-org/artstore-backend/internal/domain/upload"
	"github.com/your-org/artstore-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},
		&user.Address{},

		// Product domain
		&product.Product{},
		&product.ProductImage{},
		&product.Review{},

		// Cart domain
		&cart.Cart{},
		&cart.Item{},

		// Order domain
		&order.Order{},
		&order.Item{},

		// Upload domain
		&upload.UploadedFile{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes for catalog filtering and sorting
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_style ON products(style)",
		"CREATE INDEX IF NOT EXISTS idx_products_subject ON products(subject)",
		"CREATE INDEX IF NOT EXISTS idx_products_medium ON products(medium)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price_cents, id)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC, id)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC, id)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured)",

		// Product image indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort_order ON product_images(product_id, sort_order)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",

		// Cart indexes. The partial unique index backs the one-cart-per-guest
		// invariant; empty session ids belong to user-owned carts and are
		// excluded from it.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_session_id ON carts(session_id) WHERE session_id <> ''",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart_product ON cart_items(cart_id, product_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_is_paid ON orders(is_paid)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed sample products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Name:     "Store Admin",
		Role:     user.RoleAdmin,
		IsActive: true,
	}
	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	return nil
}

// seedSampleProducts creates a handful of paintings so a fresh install has
// something to browse
func (m *Migration) seedSampleProducts() error {
	log.Println("🖼️ Seeding sample products...")

	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	samples := []product.Product{
		{
			Name:          "Evening Harbor",
			Slug:          "evening-harbor",
			Description:   "Fishing boats at rest under a violet dusk sky, painted on location over three evenings.",
			Category:      "Painting",
			Style:         "Fine Art",
			Subject:       "Landscape",
			Medium:        "Oil",
			Material:      "Canvas",
			Size:          "Medium",
			Orientation:   "Horizontal",
			Color:         "Blue",
			Author:        "Ana Petrova",
			AuthorCountry: "Bulgaria",
			PriceCents:    15000,
			Stock:         1,
			IsFeatured:    true,
			Images: []product.ProductImage{
				{URL: "https://utfs.io/f/sample-evening-harbor.jpg", AltText: "Evening Harbor", SortOrder: 1},
			},
		},
		{
			Name:          "Sunlit Meadow Study",
			Slug:          "sunlit-meadow-study",
			Description:   "A quick plein air study of wildflowers in the morning light.",
			Category:      "Painting",
			Style:         "Modern",
			Subject:       "Floral",
			Medium:        "Acrylic",
			Material:      "Paper",
			Size:          "Small",
			Orientation:   "Vertical",
			Color:         "Green",
			Author:        "Ana Petrova",
			AuthorCountry: "Bulgaria",
			PriceCents:    6000,
			Stock:         1,
			Images: []product.ProductImage{
				{URL: "https://utfs.io/f/sample-sunlit-meadow.jpg", AltText: "Sunlit Meadow Study", SortOrder: 1},
			},
		},
		{
			Name:          "Harbor Print, Open Edition",
			Slug:          "harbor-print-open-edition",
			Description:   "Archival giclée print of Evening Harbor on heavyweight matte paper.",
			Category:      "PrintMaking",
			Style:         "Fine Art",
			Subject:       "Landscape",
			Medium:        "Ink",
			Material:      "Paper",
			Size:          "Small",
			Orientation:   "Horizontal",
			Color:         "Blue",
			Author:        "Ana Petrova",
			AuthorCountry: "Bulgaria",
			PriceCents:    1000,
			Stock:         50,
			Images: []product.ProductImage{
				{URL: "https://utfs.io/f/sample-harbor-print.jpg", AltText: "Harbor Print", SortOrder: 1},
			},
		},
	}

	for _, p := range samples {
		if err := m.db.Create(&p).Error; err != nil {
			log.Printf("⚠️ Failed to create sample product %s: %v", p.Slug, err)
		} else {
			log.Printf("✅ Created sample product: %s", p.Name)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_items",
		"orders",
		"cart_items",
		"carts",
		"reviews",
		"product_images",
		"products",
		"uploaded_files",
		"addresses",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}
