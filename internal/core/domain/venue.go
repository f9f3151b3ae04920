package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCapacityRange   = errors.New("maximum guests must be greater than minimum guests")
	ErrMultiplePrimary = errors.New("only one image can be set as primary")
	ErrImagesRequired  = errors.New("at least one image is required")
)

// Capacity bounds the guest count a venue can host.
type Capacity struct {
	MinGuests int `json:"minGuests" bson:"minGuests"`
	MaxGuests int `json:"maxGuests" bson:"maxGuests"`
}

// Facilities are the boolean amenities a venue advertises.
type Facilities struct {
	Parking         bool `json:"parking" bson:"parking"`
	AirConditioning bool `json:"airConditioning" bson:"airConditioning"`
	PowerBackup     bool `json:"powerBackup" bson:"powerBackup"`
	Restrooms       bool `json:"restrooms" bson:"restrooms"`
	Kitchen         bool `json:"kitchen" bson:"kitchen"`
	Stage           bool `json:"stage" bson:"stage"`
}

// FacilityNames lists the keys accepted by the facilities filter.
var FacilityNames = []string{"parking", "airConditioning", "powerBackup", "restrooms", "kitchen", "stage"}

// VenueImage is a stored picture of a venue.
type VenueImage struct {
	ID        string `json:"id" bson:"id"`
	URL       string `json:"url" bson:"url"`
	Caption   string `json:"caption,omitempty" bson:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary" bson:"isPrimary"`
}

// Venue is a bookable location owned by a provider.
type Venue struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	ProviderID    string       `json:"providerId" bson:"providerId"`
	Name          string       `json:"name" bson:"name"`
	Description   string       `json:"description" bson:"description"`
	Capacity      Capacity     `json:"capacity" bson:"capacity"`
	Address       Address      `json:"address" bson:"address"`
	Facilities    Facilities   `json:"facilities" bson:"facilities"`
	Images        []VenueImage `json:"images" bson:"images"`
	BasePrice     float64      `json:"basePrice" bson:"basePrice"`
	IsActive      bool         `json:"isActive" bson:"isActive"`
	AverageRating float64      `json:"averageRating" bson:"averageRating"`
	TotalReviews  int          `json:"totalReviews" bson:"totalReviews"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the invariants enforced before every venue write.
func (v *Venue) Validate() error {
	var out []string
	if strings.TrimSpace(v.Name) == "" {
		out = append(out, "name is required")
	}
	if strings.TrimSpace(v.Description) == "" {
		out = append(out, "description is required")
	}
	if v.Capacity.MinGuests < 1 {
		out = append(out, "capacity.minGuests must be at least 1")
	}
	if v.Capacity.MaxGuests < 1 {
		out = append(out, "capacity.maxGuests must be at least 1")
	}
	if v.Capacity.MinGuests >= 1 && v.Capacity.MaxGuests >= 1 && v.Capacity.MaxGuests <= v.Capacity.MinGuests {
		out = append(out, ErrCapacityRange.Error())
	}
	if strings.TrimSpace(v.Address.Street) == "" {
		out = append(out, "address.street is required")
	}
	out = append(out, v.Address.problems("address")...)
	if v.BasePrice < 0 {
		out = append(out, "basePrice must be at least 0")
	}
	primaries := 0
	for _, img := range v.Images {
		if img.IsPrimary {
			primaries++
		}
		if strings.TrimSpace(img.URL) == "" {
			out = append(out, "images.url is required")
		}
	}
	if primaries > 1 {
		out = append(out, ErrMultiplePrimary.Error())
	}
	return NewValidationError(out...)
}

// EnsurePrimaryImage promotes the first image when none is marked primary.
func (v *Venue) EnsurePrimaryImage() {
	if len(v.Images) == 0 {
		return
	}
	for _, img := range v.Images {
		if img.IsPrimary {
			return
		}
	}
	v.Images[0].IsPrimary = true
}

// AddImages appends images. A new primary demotes the existing one.
func (v *Venue) AddImages(images []VenueImage) error {
	if len(images) == 0 {
		return ErrImagesRequired
	}
	for _, img := range images {
		if img.IsPrimary {
			for i := range v.Images {
				v.Images[i].IsPrimary = false
			}
			break
		}
	}
	v.Images = append(v.Images, images...)
	v.EnsurePrimaryImage()
	return nil
}

// RemoveImage deletes an image by id, promoting another if the primary was
// removed.
func (v *Venue) RemoveImage(imageID string) (VenueImage, error) {
	for i, img := range v.Images {
		if img.ID != imageID {
			continue
		}
		v.Images = append(v.Images[:i], v.Images[i+1:]...)
		if img.IsPrimary {
			v.EnsurePrimaryImage()
		}
		return img, nil
	}
	return VenueImage{}, ErrImageNotFound
}

// VenueUpdate is a partial owner-driven update.
type VenueUpdate struct {
	Name        *string
	Description *string
	Capacity    *Capacity
	Address     *Address
	Facilities  *Facilities
	BasePrice   *float64
	Images      []VenueImage
}

// Apply merges the update into v.
func (u VenueUpdate) Apply(v *Venue) {
	if u.Name != nil {
		v.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		v.Description = strings.TrimSpace(*u.Description)
	}
	if u.Capacity != nil {
		v.Capacity = *u.Capacity
	}
	if u.Address != nil {
		v.Address = *u.Address
	}
	if u.Facilities != nil {
		v.Facilities = *u.Facilities
	}
	if u.BasePrice != nil {
		v.BasePrice = *u.BasePrice
	}
	if u.Images != nil {
		v.Images = u.Images
		v.EnsurePrimaryImage()
	}
}

// VenueFilter carries the public catalog query.
type VenueFilter struct {
	ProviderID  string
	Active      *bool
	City        string
	State       string
	MinPrice    *float64
	MaxPrice    *float64
	MinCapacity *int
	MaxCapacity *int
	Facilities  []string
	SortBy      string
	SortDesc    bool
	Page        int
	Limit       int
}
