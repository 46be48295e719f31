package main

import (
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	salesdomain "github.com/dowusu/shop-backoffice/internal/sales/domain"
	userdomain "github.com/dowusu/shop-backoffice/internal/user/domain"
	"github.com/dowusu/shop-backoffice/pkg/auth"
	"github.com/dowusu/shop-backoffice/pkg/database"
	"github.com/dowusu/shop-backoffice/pkg/logger"
)

type seedUser struct {
	FullName string
	Email    string
	Username string
	Password string
	Role     string
}

var seedUsers = []seedUser{
	{FullName: "Desmond", Email: "desmond@example.com", Username: "desmond", Password: "superadmin", Role: userdomain.RoleSuperAdmin},
	{FullName: "Sika", Email: "sika@example.com", Username: "sika", Password: "2008", Role: userdomain.RoleAdmin},
	{FullName: "Aziz", Email: "aziz@example.com", Username: "aziz", Password: "aziz55", Role: userdomain.RoleAttendant},
	{FullName: "James", Email: "james@example.com", Username: "james", Password: "james55", Role: userdomain.RoleAttendant},
	{FullName: "Jane", Email: "jane@example.com", Username: "jane", Password: "jane55", Role: userdomain.RoleAttendant},
}

func main() {
	logger.Init("shop-backoffice-seed", true)

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "backoffice"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(
		&userdomain.User{},
		&catalogdomain.Product{},
		&catalogdomain.Stock{},
		&salesdomain.Sale{},
		&salesdomain.SaleItem{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := seedStaff(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed staff")
	}

	logger.Logger.Info().Msg("Seeding complete")
}

// seedStaff upserts the default staff accounts keyed by username
func seedStaff(db *gorm.DB) error {
	for _, u := range seedUsers {
		hashed, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}

		user := userdomain.User{
			FullName: u.FullName,
			Email:    u.Email,
			Username: u.Username,
			Password: hashed,
			Role:     u.Role,
			IsActive: true,
		}

		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "password", "role"}),
		}).Create(&user).Error
		if err != nil {
			return err
		}

		logger.Logger.Info().Str("username", u.Username).Msg("Upserted user")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
