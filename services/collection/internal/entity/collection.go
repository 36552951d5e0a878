package entity

import "time"

type CollectionStatus string

const (
	CollectionStatusDraft     CollectionStatus = "draft"
	CollectionStatusPublished CollectionStatus = "published"
)

// Collection is a published, customer-visible group of products.
type Collection struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	ImageURL        string           `json:"image_url"`
	BannerURL       string           `json:"banner_url"`
	MarketingImages []string         `json:"marketing_images"`
	DisplayOrder    int              `json:"display_order"`
	IsFeatured      bool             `json:"is_featured"`
	Status          CollectionStatus `json:"status"`
	TypeID          string           `json:"type_id"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Products        []ProductLink    `json:"products"`
}

// ProductLink is one ordered membership of a product in a collection or draft.
type ProductLink struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	DisplayOrder int      `json:"display_order"`
	Product      *Product `json:"product,omitempty"`
}

// ProductIDs returns the linked product ids in display order.
func ProductIDs(links []ProductLink) []string {
	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ProductID
	}
	return ids
}
