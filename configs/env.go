package configs

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnv pulls in a .env file when one exists. Missing files are fine:
// in containers the variables come from the environment itself.
func loadEnv() {
	_ = godotenv.Load()
}

func EnvMongoURI() string {
	loadEnv()
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func EnvDBName() string {
	loadEnv()
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "arkosmarket"
}

func EnvPort() string {
	loadEnv()
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "5000"
}

func EnvJWTSecret() string {
	loadEnv()
	return os.Getenv("JWT_SECRET")
}

func EnvFrontendURL() string {
	loadEnv()
	if url := os.Getenv("FRONTEND_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}
