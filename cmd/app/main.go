package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/amanaorganics/organic-store-backend/internal/cart"
	"github.com/amanaorganics/organic-store-backend/internal/config"
	"github.com/amanaorganics/organic-store-backend/internal/database"
	"github.com/amanaorganics/organic-store-backend/internal/media"
	"github.com/amanaorganics/organic-store-backend/internal/order"
	"github.com/amanaorganics/organic-store-backend/internal/payment"
	"github.com/amanaorganics/organic-store-backend/internal/product"
	"github.com/amanaorganics/organic-store-backend/internal/user"
	"github.com/amanaorganics/organic-store-backend/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	web.ExposeErrors(!cfg.IsProduction())

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("warning: mongodb disconnect: %v", err)
		}
	}()
	db := client.Database(cfg.DBName)

	uploader, err := media.NewCloudinary(cfg.CloudinaryURL, "products")
	if err != nil {
		log.Fatalf("cloudinary configuration failed: %v", err)
	}
	gateway := payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	userRepo := user.NewMongoRepository(db)
	productRepo := product.NewMongoRepository(db)
	orderRepo := order.NewMongoRepository(db)

	// index creation happens once, at startup
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("user indexes: %v", err)
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("product indexes: %v", err)
	}

	userHandler := user.NewHandler(user.NewService(userRepo), cfg.JWTSecret)
	cartHandler := cart.NewHandler(cart.NewService(userRepo), cfg.JWTSecret)
	productHandler := product.NewHandler(product.NewService(productRepo, uploader), cfg.JWTSecret)
	orderHandler := order.NewHandler(order.NewService(orderRepo, userRepo, gateway), cfg.JWTSecret)

	app := fiber.New()
	setupCORS(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Amana Organics API - Natural Products Store")
	})

	userHandler.RegisterRoutes(app)
	cartHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)
	orderHandler.RegisterRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
