package domain

import (
	"strings"
	"time"
)

// BusinessType classifies a venue provider.
type BusinessType string

const (
	BusinessPartyPlot   BusinessType = "party-plot"
	BusinessBanquetHall BusinessType = "banquet-hall"
	BusinessFarmhouse   BusinessType = "farmhouse"
	BusinessResort      BusinessType = "resort"
	BusinessHotel       BusinessType = "hotel"
	BusinessOther       BusinessType = "other"
)

var businessTypes = map[BusinessType]struct{}{
	BusinessPartyPlot:   {},
	BusinessBanquetHall: {},
	BusinessFarmhouse:   {},
	BusinessResort:      {},
	BusinessHotel:       {},
	BusinessOther:       {},
}

func (b BusinessType) Valid() bool {
	_, ok := businessTypes[b]
	return ok
}

// DocumentType classifies a provider verification document.
type DocumentType string

const (
	DocumentLicense  DocumentType = "license"
	DocumentIdentity DocumentType = "identity"
	DocumentOther    DocumentType = "other"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentLicense, DocumentIdentity, DocumentOther:
		return true
	}
	return false
}

// Address is a postal location. City, state and pincode are required for
// providers.
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	Area    string `json:"area,omitempty" bson:"area,omitempty"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

func (a Address) problems(prefix string) []string {
	var out []string
	if strings.TrimSpace(a.City) == "" {
		out = append(out, prefix+".city is required")
	}
	if strings.TrimSpace(a.State) == "" {
		out = append(out, prefix+".state is required")
	}
	if strings.TrimSpace(a.Pincode) == "" {
		out = append(out, prefix+".pincode is required")
	}
	return out
}

// Document is a verification artefact uploaded by a provider.
type Document struct {
	Type       DocumentType `json:"type" bson:"type"`
	URL        string       `json:"url" bson:"url"`
	IsVerified bool         `json:"isVerified" bson:"isVerified"`
}

// Provider is a venue owner. New providers start unapproved and active.
type Provider struct {
	ID           string       `json:"id"`
	FirstName    string       `json:"firstName"`
	MiddleName   string       `json:"middleName,omitempty"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	PasswordHash string       `json:"-"`
	BusinessName string       `json:"businessName"`
	BusinessType BusinessType `json:"businessType"`
	Description  string       `json:"description,omitempty"`
	Website      string       `json:"website,omitempty"`
	Address      Address      `json:"address"`
	ProfileImage string       `json:"profileImage,omitempty"`
	CoverImage   string       `json:"coverImage,omitempty"`
	IsApproved   bool         `json:"isApproved"`
	IsVerified   bool         `json:"isVerified"`
	IsActive     bool         `json:"isActive"`
	Documents    []Document   `json:"documents,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ProviderRegistration is the input to provider sign-up.
type ProviderRegistration struct {
	Identity
	BusinessName string
	BusinessType BusinessType
	Description  string
	Website      string
	Address      Address
	ProfileImage string
	CoverImage   string
}

func (r *ProviderRegistration) Normalize() {
	r.Identity.Normalize()
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.Description = strings.TrimSpace(r.Description)
}

func (r ProviderRegistration) Validate() error {
	out := r.problems()
	if r.BusinessName == "" {
		out = append(out, "businessName is required")
	}
	if r.BusinessType == "" {
		out = append(out, "businessType is required")
	} else if !r.BusinessType.Valid() {
		out = append(out, "businessType must be one of: party-plot banquet-hall farmhouse resort hotel other")
	}
	if len(r.Description) > 500 {
		out = append(out, "description must be at most 500 characters")
	}
	out = append(out, r.Address.problems("address")...)
	return NewValidationError(out...)
}

// ProviderUpdate is a self-service profile change. Email, password and the
// approval flags are deliberately absent.
type ProviderUpdate struct {
	FirstName    *string
	MiddleName   *string
	LastName     *string
	Phone        *string
	BusinessName *string
	BusinessType *BusinessType
	Description  *string
	Website      *string
	Address      *Address
	ProfileImage *string
	CoverImage   *string
}

// Normalize trims every provided text field.
func (u *ProviderUpdate) Normalize() {
	for _, p := range []**string{
		&u.FirstName, &u.MiddleName, &u.LastName, &u.Phone,
		&u.BusinessName, &u.Description, &u.Website, &u.ProfileImage, &u.CoverImage,
	} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

func (u ProviderUpdate) Validate() error {
	var out []string
	if u.FirstName != nil && len(strings.TrimSpace(*u.FirstName)) < 2 {
		out = append(out, "firstName must be at least 2 characters long")
	}
	if u.LastName != nil && len(strings.TrimSpace(*u.LastName)) < 2 {
		out = append(out, "lastName must be at least 2 characters long")
	}
	if u.Phone != nil && !ValidPhone(strings.TrimSpace(*u.Phone)) {
		out = append(out, "phone must be a valid phone number")
	}
	if u.BusinessName != nil && strings.TrimSpace(*u.BusinessName) == "" {
		out = append(out, "businessName cannot be empty")
	}
	if u.BusinessType != nil && !u.BusinessType.Valid() {
		out = append(out, "businessType must be one of: party-plot banquet-hall farmhouse resort hotel other")
	}
	if u.Description != nil && len(*u.Description) > 500 {
		out = append(out, "description must be at most 500 characters")
	}
	if u.Address != nil {
		out = append(out, u.Address.problems("address")...)
	}
	return NewValidationError(out...)
}

// ProviderStatus is the admin-controlled approval/active toggle.
type ProviderStatus struct {
	IsApproved *bool
	IsActive   *bool
}

func (s ProviderStatus) Validate() error {
	if s.IsApproved == nil && s.IsActive == nil {
		return NewValidationError("isApproved or isActive must be provided")
	}
	return nil
}

// ProviderFilter narrows the public provider catalog.
type ProviderFilter struct {
	BusinessType string
	City         string
	State        string
	Search       string
	Page         int
	Limit        int
}
