// Package database opens the Postgres and Redis connections the server
// depends on.
package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/model"
)

func DSN(cfg *config.DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.SSLMode,
	)
}

// ConnectDB opens Postgres, sizes the pool for the environment and migrates
// the schema. The embeddings table needs pgvector, so it is only migrated
// when withVectors is set.
func ConnectDB(cfg *config.DBConfig, app *config.AppConfig, withVectors bool, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !app.IsProduction() {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if app.IsProduction() {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	} else {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Migrate(db, withVectors); err != nil {
		return nil, err
	}
	log.Info("database ready", zap.String("host", cfg.Host), zap.String("name", cfg.Name), zap.Bool("vectors", withVectors))
	return db, nil
}

func Migrate(db *gorm.DB, withVectors bool) error {
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Review{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if !withVectors {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&model.ProjectEmbedding{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
