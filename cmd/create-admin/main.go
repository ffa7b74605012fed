// Command-line tool to create an admin account with generated credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// generateRandomString creates a random hex string of length n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin_" + generateRandomString(4) + "@jp5.local"
	}
	password := generateRandomString(8)

	utilities.CreateAdmin(password, email, db.DB)

	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")

	os.Exit(0)
}
