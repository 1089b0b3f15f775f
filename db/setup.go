package db

import (
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.Hospital{},
		&models.Volunteer{},
		&models.Alert{},
		&models.PushNotification{},
		&models.WhatsAppMessage{},
		&models.PhoneVerificationCode{},
		&models.AuthAccount{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
