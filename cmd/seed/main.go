package main

import (
	"errors"
	"flag"
	"fmt"

	"collection-hub/pkg/config"
	"collection-hub/pkg/database"
	"collection-hub/pkg/jwt"
	"collection-hub/pkg/logger"
	"collection-hub/pkg/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	var skipTokens bool
	flag.BoolVar(&skipTokens, "skip-tokens", false, "Do not print JWTs for the seeded users")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	users, err := seedDatabase(db, log)
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	if !skipTokens {
		jwtService := jwt.NewService(cfg.JWTSecret)
		for _, user := range users {
			token, err := jwtService.GenerateToken(user.ID, string(user.Role))
			if err != nil {
				log.Error("Failed to sign token for %s: %v", user.Email, err)
				continue
			}
			fmt.Printf("%s (%s): %s\n", user.Email, user.Role, token)
		}
	}

	log.Info("Database seeded successfully!")
}

var collectionTypes = []struct {
	name        string
	slug        string
	description string
	icon        string
}{
	{"Sustainability", "sustainability", "Low impact and recycled materials", "leaf"},
	{"Materials & Products", "materials-products", "Curated by material family", "layers"},
	{"Project Type", "project-type", "Grouped by the kind of project", "briefcase"},
	{"Color Stories", "color-stories", "Palettes that work together", "palette"},
	{"Interiors", "interiors", "Room by room inspiration", "home"},
}

var seedUsers = []struct {
	name  string
	email string
	role  models.UserRole
}{
	{"Erin Editor", "editor@collections.local", models.RoleEditor},
	{"Riley Reviewer", "reviewer@collections.local", models.RoleReviewer},
	{"Avery Admin", "admin@collections.local", models.RoleAdmin},
}

var seedProducts = []struct {
	name  string
	slug  string
	price string
}{
	{"Reclaimed Oak Panel", "reclaimed-oak-panel", "129.00"},
	{"Terrazzo Tile", "terrazzo-tile", "48.50"},
	{"Linen Drape", "linen-drape", "89.99"},
	{"Cork Floor Plank", "cork-floor-plank", "34.25"},
	{"Clay Plaster", "clay-plaster", "22.00"},
	{"Brass Pendant", "brass-pendant", "210.00"},
}

func seedDatabase(db *gorm.DB, log *logger.Logger) ([]models.User, error) {
	for _, t := range collectionTypes {
		var existing models.CollectionType
		result := db.Where("slug = ?", t.slug).First(&existing)
		if result.Error == nil {
			log.Info("Collection type %s already exists, skipping", t.slug)
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up collection type %s: %w", t.slug, result.Error)
		}

		description, icon := t.description, t.icon
		collectionType := &models.CollectionType{
			Name:        t.name,
			Slug:        t.slug,
			Description: &description,
			Icon:        &icon,
		}
		if err := db.Create(collectionType).Error; err != nil {
			return nil, fmt.Errorf("failed to create collection type %s: %w", t.slug, err)
		}
		log.Info("Created collection type: %s", t.name)
	}

	users := make([]models.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		var existing models.User
		result := db.Where("email = ?", u.email).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", u.email)
			users = append(users, existing)
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user %s: %w", u.email, result.Error)
		}

		user := models.User{Name: u.name, Email: u.email, Role: u.role}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		log.Info("Created user: %s (%s)", user.Email, user.Role)
		users = append(users, user)
	}

	for _, p := range seedProducts {
		var existing models.Product
		result := db.Where("slug = ?", p.slug).First(&existing)
		if result.Error == nil {
			log.Info("Product %s already exists, skipping", p.slug)
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up product %s: %w", p.slug, result.Error)
		}

		product := &models.Product{
			Name:   p.name,
			Slug:   p.slug,
			Price:  decimal.RequireFromString(p.price),
			Status: models.ProductStatusPublished,
		}
		if err := db.Create(product).Error; err != nil {
			return nil, fmt.Errorf("failed to create product %s: %w", p.slug, err)
		}
		log.Info("Created product: %s", product.Name)
	}

	return users, nil
}
