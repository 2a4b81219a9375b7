package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	ServerPort string
	DBPath     string
	JWTSecret  string

	VAPIDSubject    string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDFile       string
	SubsFile        string

	OneSignalAppID  string
	OneSignalAPIKey string
}

func Load() *Config {
	// .env é opcional; em produção tudo vem do ambiente
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBPath:     getEnv("DB_PATH", "./data/studio.db"),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		VAPIDSubject:    getEnv("VAPID_SUBJECT", "mailto:contato@example.com"),
		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDFile:       getEnv("VAPID_FILE", "./data/vapid.json"),
		SubsFile:        getEnv("SUBS_FILE", "./data/subs.json"),

		OneSignalAppID:  getEnv("ONESIGNAL_APP_ID", ""),
		OneSignalAPIKey: getEnv("ONESIGNAL_API_KEY", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			// rodar sem segredo em produção seria pior do que não subir
			log.Fatal("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "changeme"
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
