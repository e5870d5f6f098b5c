package config

import (
	"fmt"
	"os"
	"time"

	models "PitchPerfect/models/postgres"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey, which
// the choice register relies on for its race retry.
func ConnectGORM() (*gorm.DB, error) {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		user, password, host, port, database)

	gormConfig := &gorm.Config{TranslateError: true}
	if os.Getenv("VERBOSE_POSTGRES") == "true" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		log.Errorf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("Error getting underlying SQL DB: %v", err)
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		log.Errorf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database.
func MigrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		models.User{},
		models.League{},
		models.Club{},
		models.ClubDetails{},
		models.LeaguePick{},
		models.Match{},
		models.MatchVote{},
		models.ClubVote{},
		models.Post{},
		models.PostImage{},
		models.Comment{},
		models.Award{},
		models.ClubRanking{},
		models.TeamStatistics{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Info("PostgreSQL database migrated successfully")
	return nil
}
