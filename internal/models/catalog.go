package models

import (
	"fmt"
	"strings"
)

// UserKind identifies one of the demo accounts the store ships with
type UserKind string

// Demo accounts
const (
	StandardUser          UserKind = "standard_user"
	LockedOutUser         UserKind = "locked_out_user"
	ProblemUser           UserKind = "problem_user"
	PerformanceGlitchUser UserKind = "performance_glitch_user"
	ErrorUser             UserKind = "error_user"
	VisualUser            UserKind = "visual_user"
)

// Login banner messages rendered by the store
const (
	MsgUsernameRequired   = "Epic sadface: Username is required"
	MsgPasswordRequired   = "Epic sadface: Password is required"
	MsgInvalidCredentials = "Epic sadface: Username and password do not match any user in this service"
	MsgLockedOut          = "Epic sadface: Sorry, this user has been locked out."
)

// User is a set of login credentials
type User struct {
	Username    string `yaml:"username" json:"username" validate:"required"`
	Password    string `yaml:"password" json:"password"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Product is one catalog entry. ID is the slug used in data-test attributes.
type Product struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Price       Cents  `yaml:"price" json:"price" validate:"gt=0"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
}

// SortOption is a value of the product sort dropdown
type SortOption string

// Sort options
const (
	SortNameAsc   SortOption = "az"
	SortNameDesc  SortOption = "za"
	SortPriceAsc  SortOption = "lohi"
	SortPriceDesc SortOption = "hilo"
)

// SortOptions lists every dropdown value in display order
var SortOptions = []SortOption{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

// Label returns the visible dropdown text
func (s SortOption) Label() string {
	switch s {
	case SortNameAsc:
		return "Name (A to Z)"
	case SortNameDesc:
		return "Name (Z to A)"
	case SortPriceAsc:
		return "Price (low to high)"
	case SortPriceDesc:
		return "Price (high to low)"
	default:
		return string(s)
	}
}

// Order is the direction a list is expected to be sorted in
type Order string

// Sort directions
const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseSortOption accepts either the option value or its label
func ParseSortOption(v string) (SortOption, error) {
	for _, opt := range SortOptions {
		if strings.EqualFold(v, string(opt)) || strings.EqualFold(v, opt.Label()) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q", v)
}
