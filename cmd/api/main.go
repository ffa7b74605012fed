// Command api runs the job board HTTP server.
package main

import (
	"log"
	"net/http"

	"github.com/riyanshibariyaa/jp5/internal/server"
)

// @title Job Board ATS API
// @version 1.0
// @description REST API for the job board platform and its applicant tracking system.
// @BasePath /api/v1
func main() {
	srv := server.NewServer()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Cannot start server: %s", err)
	}
}
