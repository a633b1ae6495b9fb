package main

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/openmarket/marketplace-backend/internal/auth"
	"github.com/openmarket/marketplace-backend/internal/category"
	"github.com/openmarket/marketplace-backend/internal/config"
	"github.com/openmarket/marketplace-backend/internal/image"
	"github.com/openmarket/marketplace-backend/internal/listing"
	"github.com/openmarket/marketplace-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := bootstrapSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	categoryRepo := category.NewPostgresRepository(db)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService)

	imageRepo := image.NewPostgresRepository(db)

	listingRepo := listing.NewPostgresRepository(db)
	listingService := listing.NewService(listingRepo, categoryService, userService, imageRepo)
	listingHandler := listing.NewHandler(listingService)

	imageStore := image.NewDiskStore(cfg.UploadDir)
	imageService := image.NewService(imageStore, imageRepo, image.ListingGetter(func(id int) error {
		_, err := listingService.Get(id)
		return err
	}))
	imageHandler := image.NewHandler(imageService)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	checker := auth.MultiChecker{
		auth.StaticChecker{Username: cfg.DevUsername, Password: cfg.DevPassword},
		auth.DirectoryChecker{Users: userService},
	}
	authHandler := auth.NewHandler(checker, tokens)

	authHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	listingHandler.RegisterPublicRoutes(app)
	imageHandler.RegisterPublicRoutes(app)

	// uploaded image references are served statically
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	listingHandler.RegisterProtectedRoutes(app)
	imageHandler.RegisterProtectedRoutes(app)

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	log.Printf("%s %s", c.Method(), c.OriginalURL())
	return c.Next()
}

// errorHandler keeps fiber's own status codes and turns anything
// unclassified into the uniform 500 envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).SendString(fe.Message)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"message": err.Error(),
	})
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	return db
}

// bootstrapSchema creates the tables when missing and seeds the category
// reference data on first run.
func bootstrapSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			category_name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS listings (
			listing_id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL DEFAULT 0,
			category_id INT NOT NULL,
			user_id INT NOT NULL,
			location TEXT,
			status TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS listing_images (
			image_id SERIAL PRIMARY KEY,
			listing_id INT NOT NULL,
			image_url TEXT NOT NULL,
			display_order INT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		seed := []string{
			"Electronics",
			"Vehicles",
			"Fashion",
			"Furniture",
			"Real Estate",
			"Sports",
			"Other",
		}
		for _, name := range seed {
			if _, err := db.Exec(`INSERT INTO categories (category_name) VALUES ($1)`, name); err != nil {
				continue
			}
		}
	}
	return nil
}
