package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ssa-data/babynames"
	"github.com/ssa-data/babynames/internal/api"
)

func main() {
	// Optional .env in the working directory; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("godotenv: %v", err)
	}

	// 1. Initialize Echo (Starts Instantly)
	e := echo.New()
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// 2. Initialize Handler with NIL data
	// The API is now "live" but will return 503 (Loading) if hit
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	// 3. Load datasets in the background
	go func() {
		log.Println("BACKGROUND: Loading bundled datasets...")
		t0 := time.Now()

		d := babynames.Load()
		h.SetData(d)

		if d.OK() {
			log.Printf("BACKGROUND: Load complete with %s backend in %v. API is fully ready.", d.Backend, time.Since(t0))
		} else {
			log.Printf("BACKGROUND: Load failed: %v", d.Err)
		}
	}()

	// 4. Start Server (This happens immediately)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server ready on port %s (Data loading in background...)", port)
	e.Logger.Fatal(e.Start(":" + port))
}
