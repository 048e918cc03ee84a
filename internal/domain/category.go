package domain

import "strings"

type (
	// Category is a carry category a traveler accepts.
	Category string
	// SocialProvider is a social network used for profile verification.
	SocialProvider string
)

// List of carry categories
const (
	CategoryDocuments   Category = "Documents"
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryFood        Category = "Food"
	CategoryGifts       Category = "Gifts"
	CategoryOther       Category = "Other"
)

// List of social verification providers
const (
	SocialLinkedIn  SocialProvider = "linkedin"
	SocialFacebook  SocialProvider = "facebook"
	SocialInstagram SocialProvider = "instagram"
)

var allowedCategories = [...]Category{
	CategoryDocuments, CategoryElectronics, CategoryClothing,
	CategoryFood, CategoryGifts, CategoryOther,
}

var allowedSocials = [...]SocialProvider{
	SocialLinkedIn, SocialFacebook, SocialInstagram,
}

// Categories returns the full category vocabulary in display order.
func Categories() []Category {
	return append([]Category(nil), allowedCategories[:]...)
}

// Valid checks if the Category is part of the vocabulary
func (c Category) Valid() bool {
	for _, v := range allowedCategories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, v := range allowedCategories {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// Valid checks if the SocialProvider is supported
func (p SocialProvider) Valid() bool {
	for _, v := range allowedSocials {
		if p == v {
			return true
		}
	}
	return false
}

// ParseSocialProvider resolves a provider name case-insensitively.
func ParseSocialProvider(s string) (SocialProvider, bool) {
	s = strings.TrimSpace(s)
	for _, v := range allowedSocials {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}
