package usecase

import "github.com/foodscan/backend/internal/domain"

// ComplianceResult is the regulatory-compliance check output.
type ComplianceResult struct {
	IsCompliant     bool     `json:"is_compliant"`
	RegulatoryNotes []string `json:"regulatory_notes"`
	CategoryMatch   string   `json:"category_match,omitempty"`
}

// CheckCompliance validates a product against regulatory datasets.
//
// Placeholder: additive limits, labeling requirements and nutrition-claim
// verification land with the regulatory dataset integration.
func CheckCompliance(product *domain.ProductRecord) ComplianceResult {
	return ComplianceResult{
		IsCompliant:     true,
		RegulatoryNotes: []string{"Regulatory validation module pending integration."},
	}
}
