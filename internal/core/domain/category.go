package domain

import "time"

// CategoryName is the closed set of event categories.
type CategoryName string

var categoryNames = map[CategoryName]struct{}{
	"birthday":        {},
	"anniversary":     {},
	"engagement":      {},
	"wedding":         {},
	"corporate-party": {},
	"family-function": {},
	"festival":        {},
	"other":           {},
}

func (n CategoryName) Valid() bool {
	_, ok := categoryNames[n]
	return ok
}

// Category groups venues by event type.
type Category struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Name        CategoryName `json:"name" bson:"name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string       `json:"icon,omitempty" bson:"icon,omitempty"`
	IsActive    bool         `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (c Category) Validate() error {
	if c.Name == "" {
		return NewValidationError("name is required")
	}
	if !c.Name.Valid() {
		return NewValidationError("name must be one of: birthday anniversary engagement wedding corporate-party family-function festival other")
	}
	return nil
}
