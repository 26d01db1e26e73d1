// Package models defines the core data structures shared across the site
// backend: identities, catalog products, and the CMS-managed content types.
package models

import "time"

// Identity is the resolved representation of who is making a request.
// It is produced once per request from the session credential and is
// never mutated afterwards.
type Identity struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// Email is the login email of the user.
	Email string `json:"email"`
	// CreatedAt is when the user record was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the user record was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a single catalog entry. The slices preserve insertion order;
// Images is expected to be non-empty for published products.
type Product struct {
	// ID is the unique identifier for the product.
	ID string `json:"id"`
	// Name is the display name of the product.
	Name string `json:"name"`
	// Description is the marketing copy for the product.
	Description string `json:"description"`
	// Category is the product category id (e.g. "desks").
	Category string `json:"category"`
	// Collection is the curated collection id, empty if uncollected.
	Collection string `json:"collection,omitempty"`
	// Images holds ordered image URLs.
	Images []string `json:"images"`
	// Features holds set-like feature bullet points, insertion order kept.
	Features []string `json:"features"`
	// Colors holds set-like available colors, insertion order kept.
	Colors []string `json:"colors"`
	// Featured marks the product for the curated home-page strip.
	Featured bool `json:"featured"`
	// CreatedAt is when the product was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the product was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Testimonial is a customer quote shown on the public site.
type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a portfolio entry describing completed client work.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Client      string    `json:"client"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HeroAsset is an uploaded hero image or video referenced by the home page.
type HeroAsset struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"` // "image" or "video"
	URL       string    `json:"url"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyInfo is the single editable company profile record.
type CompanyInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline"`
	About     string    `json:"about"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FAQ is a question/answer pair shown on the public FAQ page.
type FAQ struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactMessage is a submitted contact-form entry.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
