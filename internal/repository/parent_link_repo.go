package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// ErrDuplicateLink reports an attempt to link an already-linked pair.
var ErrDuplicateLink = errors.New("parent already linked to student")

// ParentLinkRepository manages parent-student associations. Every child read
// in the parent surface must pass Exists before touching student data.
type ParentLinkRepository interface {
	Create(ctx context.Context, link *models.ParentLink) error
	Exists(ctx context.Context, parentID, studentID uint) (bool, error)
	Delete(ctx context.Context, parentID, studentID uint) (int64, error)
	ListChildren(ctx context.Context, parentID uint) ([]models.Student, error)
}

type parentLinkRepository struct {
	db *gorm.DB
}

// NewParentLinkRepository instantiates the repository.
func NewParentLinkRepository(db *gorm.DB) ParentLinkRepository {
	return &parentLinkRepository{db: db}
}

func (r *parentLinkRepository) Create(ctx context.Context, link *models.ParentLink) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateLink
		}
		return err
	}
	return nil
}

func (r *parentLinkRepository) Exists(ctx context.Context, parentID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ParentLink{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *parentLinkRepository) Delete(ctx context.Context, parentID, studentID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Delete(&models.ParentLink{})
	return result.RowsAffected, result.Error
}

func (r *parentLinkRepository) ListChildren(ctx context.Context, parentID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN parent_links ON parent_links.student_id = students.id").
		Where("parent_links.parent_id = ?", parentID).
		Find(&students).Error
	return students, err
}
