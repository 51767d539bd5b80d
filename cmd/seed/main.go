package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// RewardSeed is a catalog row to insert
type RewardSeed struct {
	Name        string
	Description string
	PointCost   int
}

var rewards = []RewardSeed{
	{
		Name:        "Reusable Water Bottle",
		Description: "Stainless steel bottle, 750ml",
		PointCost:   150,
	},
	{
		Name:        "Canvas Tote Bag",
		Description: "Organic cotton shopping bag",
		PointCost:   100,
	},
	{
		Name:        "Public Transport Day Pass",
		Description: "One day of unlimited city transit",
		PointCost:   250,
	},
	{
		Name:        "Tree Planting Donation",
		Description: "We plant a tree in your name",
		PointCost:   500,
	},
	{
		Name:        "Coffee Voucher",
		Description: "Free coffee at partner cafes",
		PointCost:   75,
	},
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Database connection parameters
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "")
	dbName := getEnv("DB_NAME", "greencycle_db")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	log.Println("✅ Connected to database, seeding reward catalog...")

	seeded := 0
	for _, reward := range rewards {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM reward_items WHERE name = $1)", reward.Name).Scan(&exists)
		if err != nil {
			log.Printf("❌ Failed to check reward %q: %v", reward.Name, err)
			continue
		}
		if exists {
			log.Printf("⏭️ Reward %q already exists, skipping", reward.Name)
			continue
		}

		_, err = db.Exec(`
			INSERT INTO reward_items (name, description, point_cost, active, created_at, updated_at)
			VALUES ($1, $2, $3, true, NOW(), NOW())`,
			reward.Name, reward.Description, reward.PointCost)
		if err != nil {
			log.Printf("❌ Failed to insert reward %q: %v", reward.Name, err)
			continue
		}

		log.Printf("✅ Seeded reward %q (%d points)", reward.Name, reward.PointCost)
		seeded++
	}

	log.Printf("🎉 Seeding complete: %d rewards inserted", seeded)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
