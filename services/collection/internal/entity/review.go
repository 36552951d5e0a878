package entity

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusApproved || s == ReviewStatusRejected
}

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// CollectionReview is a submitted draft awaiting, or past, moderation.
type CollectionReview struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Description     string        `json:"description"`
	ImageURL        string        `json:"image_url"`
	BannerURL       string        `json:"banner_url"`
	MarketingImages []string      `json:"marketing_images"`
	DisplayOrder    int           `json:"display_order"`
	IsFeatured      bool          `json:"is_featured"`
	Status          ReviewStatus  `json:"status"`
	ReviewerNotes   *string       `json:"reviewer_notes"`
	ReviewedBy      *string       `json:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at"`
	TypeID          string        `json:"type_id"`
	CreatedBy       string        `json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Products        []ProductLink `json:"products"`
}
