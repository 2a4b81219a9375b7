package db

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/EsmalteStudio/nail-scheduler/internal/config"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create data dir: %v", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	// SQLite: um único writer; conexões extras só geram SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Servico{},
		&models.Produto{},
		&models.Agendamento{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
