package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/roxy-k/nest-egg/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Operator tool: create a local account without going through the API.
func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "plaintext password (min 6 chars)")
	name := flag.String("name", "", "display name (optional)")
	flag.Parse()
	if *email == "" || *password == "" {
		fmt.Println("usage: go run ./cmd/create_user -email a@x.com -password secret1 [-name Name]")
		os.Exit(2)
	}
	if len(*password) < 6 {
		log.Fatal("password too short (min 6)")
	}

	_ = godotenv.Load()
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		log.Fatal("DATABASE_URL not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	var existing models.User
	if err := db.Where("email = ?", addr).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", addr, existing.ID)
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Email: addr, Name: strings.TrimSpace(*name), PasswordHash: hash, Provider: "local"}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", addr, user.ID)
}
