package off

import (
	"github.com/foodscan/backend/internal/domain"
	"github.com/foodscan/backend/internal/normalizer"
)

// productPayload is a barcode lookup response. Status 1 or a present
// product object indicates the product exists.
type productPayload struct {
	Status  int         `json:"status"`
	Product *rawProduct `json:"product"`
}

// searchPayload is a free-text search response.
type searchPayload struct {
	Count    int          `json:"count"`
	Products []rawProduct `json:"products"`
}

// rawSource is one entry of a payload's source list.
type rawSource struct {
	ID string `json:"id"`
}

// rawProduct is the subset of an Open Food Facts product object this
// service consumes.
type rawProduct struct {
	Code               string         `json:"code"`
	ProductName        string         `json:"product_name"`
	ProductNameEn      string         `json:"product_name_en"`
	GenericName        string         `json:"generic_name"`
	Nutriments         map[string]any `json:"nutriments"`
	IngredientsText    string         `json:"ingredients_text"`
	IngredientsTextEn  string         `json:"ingredients_text_en"`
	AdditivesTags      []string       `json:"additives_tags"`
	Sources            []rawSource    `json:"sources"`
	ImageFrontURL      string         `json:"image_front_url"`
	ImageURL           string         `json:"image_url"`
	ImageFrontSmallURL string         `json:"image_front_small_url"`
	CategoriesTags     []string       `json:"categories_tags"`
	AllergensTags      []string       `json:"allergens_tags"`
	TracesTags         []string       `json:"traces_tags"`
	NovaGroup          int            `json:"nova_group"`
}

// name returns the best available product name using the fallback order
// product_name -> product_name_en -> generic_name -> "Unknown Product".
func (p *rawProduct) name() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	if p.GenericName != "" {
		return p.GenericName
	}
	return domain.UnknownProductName
}

// imageURL returns the first available image field.
func (p *rawProduct) imageURL() string {
	if p.ImageFrontURL != "" {
		return p.ImageFrontURL
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.ImageFrontSmallURL
}

// ingredientsText returns the default-language ingredients text, falling
// back to the English field.
func (p *rawProduct) ingredientsText() string {
	if p.IngredientsText != "" {
		return p.IngredientsText
	}
	return p.IngredientsTextEn
}

// mapProduct converts a raw payload product to the canonical record.
// fallbackID is used when the payload carries no code; defaultSource when
// it lists no sources.
func mapProduct(p *rawProduct, fallbackID, defaultSource string) *domain.ProductRecord {
	id := p.Code
	if id == "" {
		id = fallbackID
	}

	sources := make([]string, 0, len(p.Sources))
	for _, s := range p.Sources {
		if s.ID != "" {
			sources = append(sources, s.ID)
		}
	}
	if len(sources) == 0 {
		sources = []string{defaultSource}
	}

	return &domain.ProductRecord{
		ID:           id,
		Name:         p.name(),
		Ingredients:  normalizer.NormalizeIngredients(p.ingredientsText()),
		Additives:    normalizer.ExtractAdditives(p.AdditivesTags),
		Nutrition:    normalizer.NormalizeNutrition(p.Nutriments),
		DataSources:  sources,
		ImageURL:     p.imageURL(),
		CategoryTags: p.CategoriesTags,
		AllergenTags: p.AllergensTags,
		TraceTags:    p.TracesTags,
		NovaGroup:    p.NovaGroup,
	}
}
