// Package main is a development utility that provisions the admin user
// from the environment and loads a small demo catalog.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/hearthwood/site/internal/config"
	"github.com/hearthwood/site/internal/db"
	"github.com/hearthwood/site/internal/models"
	"github.com/hearthwood/site/internal/repository"
)

func main() {
	_ = godotenv.Load()
	options := config.Parse()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer postgresDB.Close()

	ctx := context.Background()
	seedAdmin(ctx, postgresDB)
	seedProducts(ctx, postgresDB)
}

func seedAdmin(ctx context.Context, sqldb *sql.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	users := repository.NewPostgresUserRepository(sqldb)
	identity := models.Identity{
		ID:    os.Getenv("ADMIN_ID"),
		Name:  "Site Admin",
		Email: email,
	}
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	// Create is a no-op when the email already exists.
	if err := users.Create(ctx, identity, hash); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	log.Printf("admin user ready: %s (id %s)", email, identity.ID)
}

func seedProducts(ctx context.Context, sqldb *sql.DB) {
	products := repository.NewPostgresProductRepository(sqldb)

	existing, err := products.List(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already has %d products, skipping demo seed", len(existing))
		return
	}

	demo := []models.Product{
		{
			Name:        "Alder Bench",
			Description: "A low entry bench in solid alder with a hand-rubbed oil finish.",
			Category:    "seating",
			Collection:  "heritage",
			Images:      []string{"https://media.hearthwood.example/catalog/alder-bench.jpg"},
			Features:    []string{"Solid alder", "Mortise and tenon joinery"},
			Colors:      []string{"natural", "walnut stain"},
			Featured:    true,
		},
		{
			Name:        "Fennel Dining Table",
			Description: "Eight-seat dining table with a bookmatched oak top.",
			Category:    "tables",
			Collection:  "heritage",
			Images:      []string{"https://media.hearthwood.example/catalog/fennel-table.jpg"},
			Features:    []string{"Bookmatched oak", "Seats eight"},
			Colors:      []string{"natural"},
			Featured:    true,
		},
		{
			Name:        "Coastline Shelf",
			Description: "Wall-mounted shelf in white ash with hidden steel brackets.",
			Category:    "storage",
			Images:      []string{"https://media.hearthwood.example/catalog/coastline-shelf.jpg"},
			Features:    []string{"White ash", "Hidden brackets"},
			Colors:      []string{"natural", "ebonized"},
		},
	}

	for _, p := range demo {
		p.ID = uuid.NewString()
		if err := products.Create(ctx, p); err != nil {
			log.Fatalf("seed product %q failed: %v", p.Name, err)
		}
	}
	log.Printf("seeded %d demo products", len(demo))
}
