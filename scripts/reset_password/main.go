package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	ID           uint
	Email        string
	PasswordHash []byte
}

// Resets a local account's password by email.
func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("--email and --password are required")
	}
	if len(*password) < 6 {
		log.Fatal("password too short (min 6)")
	}

	_ = godotenv.Load()
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		log.Fatal("DATABASE_URL not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	var user User
	if err := db.Where("email = ?", addr).First(&user).Error; err != nil {
		log.Fatalf("user not found: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		log.Fatalf("update failed: %v", err)
	}
	fmt.Printf("Password reset for %s\n", user.Email)
}
