package postgres

import (
	"ablefy-sync/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// NewPostgres opens a gorm connection against the target store and
// migrates the pipeline's tables. Profiles are owned by the hosted auth
// subsystem and are not migrated here.
func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&domain.Transaction{}, &domain.Order{}, &domain.CourseMapping{}); err != nil {
		return nil, err
	}

	return db, nil
}
