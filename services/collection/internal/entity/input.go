package entity

// CollectionInput carries the editable fields of a draft or a directly
// published collection.
type CollectionInput struct {
	Name            string   `json:"name" validate:"required,min=3,max=255"`
	Description     string   `json:"description" validate:"required,min=10,max=5000"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url,max=500"`
	BannerURL       string   `json:"banner_url" validate:"omitempty,url,max=500"`
	MarketingImages []string `json:"marketing_images" validate:"max=20,dive,url,max=500"`
	IsFeatured      bool     `json:"is_featured"`
	TypeID          string   `json:"type_id" validate:"required,uuid"`
	ProductIDs      []string `json:"product_ids" validate:"dive,uuid"`
}

type MediaKind string

const (
	MediaKindImage     MediaKind = "image"
	MediaKindBanner    MediaKind = "banner"
	MediaKindMarketing MediaKind = "marketing"
)

func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindImage, MediaKindBanner, MediaKindMarketing:
		return true
	}
	return false
}
