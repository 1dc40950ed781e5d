package repository

import (
	"time"

	"epass-service/internal/model"
)

var categoriesCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var defaultCategories = []model.Category{
	{ID: "1", Name: "Medical Emergency", Description: "Hospital visits, medicine purchase and medical emergencies", IsActive: true, CreatedAt: categoriesCreatedAt},
	{ID: "2", Name: "Essential Services", Description: "Groceries, utilities and other essential supplies", IsActive: true, CreatedAt: categoriesCreatedAt},
	{ID: "3", Name: "Family Emergency", Description: "Death, illness or urgent matters in the family", IsActive: true, CreatedAt: categoriesCreatedAt},
	{ID: "4", Name: "Work Related", Description: "Travel required by essential-service employment", IsActive: true, CreatedAt: categoriesCreatedAt},
	{ID: "5", Name: "Government Duty", Description: "Official duty of government staff", IsActive: false, CreatedAt: categoriesCreatedAt},
}

// CategoryRepository serves the read-only category reference list.
type CategoryRepository struct {
	categories []model.Category
}

func NewCategoryRepository() *CategoryRepository {
	return NewCategoryRepositoryFrom(defaultCategories)
}

func NewCategoryRepositoryFrom(categories []model.Category) *CategoryRepository {
	return &CategoryRepository{categories: append([]model.Category(nil), categories...)}
}

// FindAll returns every category in reference order.
func (r *CategoryRepository) FindAll() []model.Category {
	return append([]model.Category(nil), r.categories...)
}

func (r *CategoryRepository) FindActive() []model.Category {
	var active []model.Category
	for _, c := range r.categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active
}

func (r *CategoryRepository) FindByID(id string) (*model.Category, bool) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, true
		}
	}
	return nil, false
}

func (r *CategoryRepository) CountActive() int {
	return len(r.FindActive())
}
