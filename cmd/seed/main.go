package main

import (
	"context"
	"log"
	"os"
	"time"

	"go-permit/internal/features/user"
	"go-permit/pkg/utils"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds an admin account and a conventional four-role approver roster
// for local development.
func main() {
	_ = godotenv.Load()

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	dbName := getEnv("DB_NAME", "go-permit")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	users := client.Database(dbName).Collection("users")

	seedUsers := []user.User{
		{Name: "Admin", Email: "admin@plant.local", Department: "Safety", Role: "admin"},
		{Name: "Lee Min", Email: "lee@plant.local", Department: "Production", Role: "work supervisor"},
		{Name: "Park Jun", Email: "park@plant.local", Department: "Production", Role: "site verifier"},
		{Name: "Choi Hana", Email: "choi@plant.local", Department: "Operations", Role: "permit approver"},
		{Name: "Kang Soo", Email: "kang@plant.local", Department: "Safety", Role: "safety manager"},
	}

	for _, u := range seedUsers {
		count, err := users.CountDocuments(ctx, bson.M{"email": u.Email})
		if err != nil {
			log.Fatalf("Failed to check user %s: %v", u.Email, err)
		}
		if count > 0 {
			log.Printf("User %s already exists, skipping", u.Email)
			continue
		}

		u.ID = primitive.NewObjectID()
		u.Password = utils.HashPassword("changeme")
		u.CreatedAt = time.Now()

		if _, err := users.InsertOne(ctx, u); err != nil {
			log.Fatalf("Failed to insert user %s: %v", u.Email, err)
		}
		log.Printf("Seeded user %s (%s)", u.Name, u.Role)
	}

	log.Println("Seeding complete")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
