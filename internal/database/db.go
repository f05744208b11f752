package database

import (
	"log"

	"vacationhub/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate applies the schema and seeds the built-in vacation types.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Department{},
		&model.VacationType{},
		&model.VacationRequest{},
		&model.Notification{},
		&model.AuditLog{},
	)
	if err != nil {
		return err
	}

	seedVacationTypes(db)
	return nil
}

func seedVacationTypes(db *gorm.DB) {
	seeds := []model.VacationType{
		{Name: model.TypeRegular, Description: "Annual vacation from the yearly allowance"},
		{Name: model.TypeCasual, Description: "Short-notice casual leave"},
		{Name: model.TypeSick, Description: "Sick leave"},
		{Name: model.TypePersonal, Description: "Personal errands"},
		{Name: model.TypeHoliday, Description: "Public holiday compensation"},
	}
	for _, seed := range seeds {
		var count int64
		db.Model(&model.VacationType{}).Where("name = ?", seed.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&seed).Error; err != nil {
				log.Printf("WARNING: failed to seed vacation type %q: %v", seed.Name, err)
			}
		}
	}
}
