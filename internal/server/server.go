// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/notify"
)

// MyServer holds the dependencies shared by every route handler.
type MyServer struct {
	DB       *database.DBinstanceStruct
	Mailer   notify.Mailer
	Calendar notify.Calendar
}

// NewServer construct a configured http.Server around a MyServer instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	s := &MyServer{
		DB:       db,
		Mailer:   notify.NewMailerFromEnv(),
		Calendar: notify.NewCalendarFromEnv(context.Background()),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
