package postgres

import (
	"context"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mappingRepo struct {
	db *gorm.DB
}

func NewCourseMappingRepository(db *gorm.DB) repository.CourseMappingRepository {
	return &mappingRepo{db: db}
}

func (r *mappingRepo) ActiveMappings(ctx context.Context) (map[int64]uuid.UUID, error) {
	var rows []domain.CourseMapping
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[int64]uuid.UUID, len(rows))
	for _, row := range rows {
		out[row.AblefyProductID] = row.CourseID
	}
	return out, nil
}
