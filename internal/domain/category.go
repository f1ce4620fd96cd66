// Package domain contains the core business entities for Questlog.
// These entities represent the fundamental concepts of the gamified
// checklist and are independent of any external frameworks or
// infrastructure.
package domain

import (
	"encoding/json"
	"strings"
)

// categoryStyle holds the display properties for a well-known category.
type categoryStyle struct {
	DisplayName string
	Emoji       string
	Color       string
}

// defaultCategoryStyles maps well-known category names to their canonical
// display properties. Unknown names fall back to the generic style.
var defaultCategoryStyles = map[string]categoryStyle{
	"work":     {DisplayName: "Work", Emoji: "💼", Color: "#3498db"},
	"personal": {DisplayName: "Personal", Emoji: "📝", Color: "#95a5a6"},
	"health":   {DisplayName: "Health", Emoji: "🏃‍♂️", Color: "#e74c3c"},
	"learning": {DisplayName: "Learning", Emoji: "📚", Color: "#9b59b6"},
	"finance":  {DisplayName: "Finance", Emoji: "💰", Color: "#f39c12"},
	"home":     {DisplayName: "Home", Emoji: "🏠", Color: "#27ae60"},
	"social":   {DisplayName: "Social", Emoji: "👥", Color: "#e67e22"},
	"hobby":    {DisplayName: "Hobby", Emoji: "🎨", Color: "#f1c40f"},
}

const (
	genericCategoryEmoji = "📝"
	genericCategoryColor = "#95a5a6"
)

// Category is a named, styled label attached to tasks. The name is the
// uniqueness key; display properties carry no identity.
type Category struct {
	Name        string
	DisplayName string
	Emoji       string
	Color       string
}

// NewCategory creates a category from a name alone, picking up the
// canonical style for well-known names.
func NewCategory(name string) Category {
	return NewStyledCategory(name, "", "", "")
}

// NewStyledCategory creates a category with explicit display properties.
// The name is normalized to lowercase; each empty display property falls
// back to the default style table, then to the generic style.
func NewStyledCategory(name, displayName, emoji, color string) Category {
	name = strings.ToLower(name)
	style, known := defaultCategoryStyles[name]

	if displayName == "" {
		if known {
			displayName = style.DisplayName
		} else {
			displayName = capitalize(name)
		}
	}
	if emoji == "" {
		if known {
			emoji = style.Emoji
		} else {
			emoji = genericCategoryEmoji
		}
	}
	if color == "" {
		if known {
			color = style.Color
		} else {
			color = genericCategoryColor
		}
	}

	return Category{
		Name:        name,
		DisplayName: displayName,
		Emoji:       emoji,
		Color:       color,
	}
}

// DefaultCategories returns the fixed category set used to bootstrap a
// fresh installation.
func DefaultCategories() []Category {
	names := []string{"work", "personal", "health", "learning", "finance", "home"}
	categories := make([]Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, NewCategory(name))
	}
	return categories
}

// Equal reports whether two categories share the same name. Display
// properties carry no identity.
func (c Category) Equal(other Category) bool {
	return c.Name == other.Name
}

// String renders the category as shown to the user.
func (c Category) String() string {
	return c.Emoji + " " + c.DisplayName
}

// categoryRecord is the wire representation of a Category.
type categoryRecord struct {
	Name        *string `json:"name"`
	DisplayName string  `json:"display_name"`
	Emoji       string  `json:"emoji"`
	Color       string  `json:"color"`
}

// MarshalJSON serializes the category to its stored record form.
func (c Category) MarshalJSON() ([]byte, error) {
	name := c.Name
	return json.Marshal(categoryRecord{
		Name:        &name,
		DisplayName: c.DisplayName,
		Emoji:       c.Emoji,
		Color:       c.Color,
	})
}

// UnmarshalJSON restores a category from its stored record form. The name
// is required; all other fields are optional and fall back to the same
// defaults as construction.
func (c *Category) UnmarshalJSON(data []byte) error {
	var rec categoryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if rec.Name == nil {
		return &MissingFieldError{Field: "name"}
	}

	*c = NewStyledCategory(*rec.Name, rec.DisplayName, rec.Emoji, rec.Color)
	return nil
}

// capitalize uppercases the first byte of s. An empty name stays empty.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
