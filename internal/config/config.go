package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	CloudinaryURL     string
	RazorpayKeyID     string
	RazorpayKeySecret string
	Env               string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("STORE_ADDR")
	if addr == "" {
		addr = ":4000"
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "e-commerce"
	}

	return Config{
		Addr:              addr,
		MongoURI:          mongoURI,
		DBName:            dbName,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Env:               os.Getenv("APP_ENV"),
	}
}

// IsProduction reports whether verbatim error messages must stay out of
// 500 responses.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
