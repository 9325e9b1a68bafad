package usecases

import (
	"math"
	"strings"

	"vendor-hub.backend/internal/domain/entities"
)

// Completeness scoring weights. Required profile fields dominate the score;
// optional fields top it up.
const (
	profileRequiredWeight = 70.0
	profileOptionalWeight = 30.0
	requiredDocumentCount = 3
)

// CalculateProfileCompleteness scores a merchant profile 0-100. Seven required
// fields carry 70 points, four optional fields carry 30. A string field counts
// as filled only if non-empty after trimming.
func CalculateProfileCompleteness(m *entities.Merchant) int {
	required := []string{
		m.BusinessName,
		m.Email,
		m.Phone,
		string(m.BusinessType),
		m.Description,
		m.Address,
		m.Location,
	}

	requiredFilled := 0
	for _, f := range required {
		if strings.TrimSpace(f) != "" {
			requiredFilled++
		}
	}

	optionalFilled := 0
	if strings.TrimSpace(m.Website.String) != "" {
		optionalFilled++
	}
	if m.YearEstablished.Valid && m.YearEstablished.Int64 != 0 {
		optionalFilled++
	}
	if strings.TrimSpace(m.LogoLocator.String) != "" {
		optionalFilled++
	}
	if strings.TrimSpace(m.BusinessHours.String) != "" {
		optionalFilled++
	}

	score := profileRequiredWeight*float64(requiredFilled)/float64(len(required)) +
		profileOptionalWeight*float64(optionalFilled)/4.0
	return int(math.Round(score))
}

// CalculateDocumentsCompleteness scores document completeness 0-100 over the
// three required types. A type counts only if its active record has a
// non-empty storage locator.
func CalculateDocumentsCompleteness(docs []*entities.Document) int {
	present := presentRequiredTypes(docs)
	return int(math.Round(100.0 * float64(len(present)) / requiredDocumentCount))
}

// MissingRequiredDocuments returns the required document types a merchant has
// not yet submitted, in canonical order.
func MissingRequiredDocuments(docs []*entities.Document) []entities.DocumentType {
	present := presentRequiredTypes(docs)
	var missing []entities.DocumentType
	for _, rt := range entities.RequiredDocumentTypes {
		if !present[rt] {
			missing = append(missing, rt)
		}
	}
	return missing
}

func presentRequiredTypes(docs []*entities.Document) map[entities.DocumentType]bool {
	present := make(map[entities.DocumentType]bool)
	for _, d := range docs {
		if d == nil || !d.Active {
			continue
		}
		if d.Type.IsRequired() && strings.TrimSpace(d.StorageLocator) != "" {
			present[d.Type] = true
		}
	}
	return present
}
