package form

import (
	"strings"

	"github.com/Veraticus/coinpurse/internal/icons"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/validation"
)

// DefaultCategoryColor is used when no color is chosen.
const DefaultCategoryColor = "#6366F1"

// NewCategoryForm creates the create/edit form for a category.
func NewCategoryForm() *Controller[validation.Field] {
	c := NewFieldForm(validation.CategoryName, validation.CategoryType, validation.Icon, validation.Color)
	c.Load(map[validation.Field]string{
		validation.CategoryType: string(model.CategoryTypeExpense),
		validation.Icon:         string(icons.Other),
		validation.Color:        DefaultCategoryColor,
	})
	return c
}

// LoadCategory fills a category form from a stored category.
func LoadCategory(c *Controller[validation.Field], cat model.Category) {
	c.Load(map[validation.Field]string{
		validation.CategoryName: cat.Name,
		validation.CategoryType: string(cat.Type),
		validation.Icon:         cat.Icon,
		validation.Color:        cat.Color,
	})
}

// CategoryInput converts submitted values into the API payload.
func CategoryInput(values Values[validation.Field]) model.CategoryInput {
	color := strings.TrimSpace(values[validation.Color])
	if color == "" {
		color = DefaultCategoryColor
	}
	return model.CategoryInput{
		Name:  strings.TrimSpace(values[validation.CategoryName]),
		Type:  model.CategoryType(values[validation.CategoryType]),
		Icon:  string(icons.Resolve(values[validation.Icon]).Key),
		Color: color,
	}
}
