package config

import "os"

type Config struct {
	Port      string
	Env       string
	MongoURL  string
	JWTSecret string
	UploadDir string
	RedisAddr string
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("ENV", "development"),
		MongoURL:  getEnv("MONGO_URL", ""),
		JWTSecret: getEnv("JWT_SECRET", "supersecretjwtkey"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
