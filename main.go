package main

import (
	"Grimoire/config"
	_ "Grimoire/docs"
	"Grimoire/middleware"
	"Grimoire/routes"
	"Grimoire/services/catalog"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Grimoire API
// @version 1.0
// @description Gin-Gonic server for the spell trading card companion app
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	// Catalog cache: in-process by default, shared through Redis when
	// REDIS_ADDR is set.
	var cache catalog.Cache = catalog.NewMemoryCache()
	if os.Getenv("REDIS_ADDR") != "" {
		redisClient, err := config.ConnectRedis()
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = catalog.NewRedisCache(redisClient)
		log.Println("Connection to Redis successful")
	}
	store := catalog.NewStore(gormDB, cache)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
