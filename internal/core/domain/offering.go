package domain

import (
	"strings"
	"time"
)

// DefaultOfferingDuration applies when a new offering names no duration.
const DefaultOfferingDuration = "4 hours"

// OfferingName is the event type an offering is priced for.
type OfferingName string

var offeringNames = map[OfferingName]struct{}{
	"birthday":        {},
	"anniversary":     {},
	"engagement":      {},
	"wedding":         {},
	"corporate-party": {},
	"family-function": {},
	"other":           {},
}

func (n OfferingName) Valid() bool {
	_, ok := offeringNames[n]
	return ok
}

// Offering is a priced event package sold at one venue, published under the
// /api/services catalog. ProviderID is copied from the venue at creation and
// drives the ownership check.
type Offering struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	VenueID     string       `json:"venueId" bson:"venueId"`
	ProviderID  string       `json:"providerId" bson:"providerId"`
	Name        OfferingName `json:"name" bson:"name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64      `json:"price" bson:"price"`
	Duration    string       `json:"duration" bson:"duration"`
	Inclusions  []string     `json:"inclusions" bson:"inclusions"`
	IsActive    bool         `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (o *Offering) Validate() error {
	var out []string
	if strings.TrimSpace(o.VenueID) == "" {
		out = append(out, "venueId is required")
	}
	if o.Name == "" {
		out = append(out, "name is required")
	} else if !o.Name.Valid() {
		out = append(out, "name must be one of: birthday anniversary engagement wedding corporate-party family-function other")
	}
	if o.Price < 0 {
		out = append(out, "price must be at least 0")
	}
	if len(o.Description) > 1000 {
		out = append(out, "description must be at most 1000 characters")
	}
	for _, inc := range o.Inclusions {
		if inc == "" {
			out = append(out, "inclusions cannot contain empty items")
			break
		}
	}
	return NewValidationError(out...)
}

// OfferingUpdate is a partial owner-driven change. The venue cannot be moved.
type OfferingUpdate struct {
	Name        *OfferingName
	Description *string
	Price       *float64
	Duration    *string
	Inclusions  []string
}

func (u OfferingUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Duration == nil && u.Inclusions == nil
}

// Apply merges the update into o.
func (u OfferingUpdate) Apply(o *Offering) {
	if u.Name != nil {
		o.Name = OfferingName(strings.ToLower(strings.TrimSpace(string(*u.Name))))
	}
	if u.Description != nil {
		o.Description = strings.TrimSpace(*u.Description)
	}
	if u.Price != nil {
		o.Price = *u.Price
	}
	if u.Duration != nil {
		if d := strings.TrimSpace(*u.Duration); d != "" {
			o.Duration = d
		}
	}
	if u.Inclusions != nil {
		o.Inclusions = CleanInclusions(u.Inclusions)
	}
}

// CleanInclusions trims items and drops blanks.
func CleanInclusions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// OfferingFilter narrows offering listings. Active nil means any status.
type OfferingFilter struct {
	VenueID    string
	ProviderID string
	Name       string
	MinPrice   *float64
	MaxPrice   *float64
	Active     *bool
	Page       int
	Limit      int
}
