package models

// SubjectCategory groups subjects by their weekly quota policy.
type SubjectCategory string

const (
	CategoryMain     SubjectCategory = "main"
	CategoryLanguage SubjectCategory = "language"
	CategoryOther    SubjectCategory = "other"
)

// Valid reports whether the category is one of the known quota groups.
func (c SubjectCategory) Valid() bool {
	switch c {
	case CategoryMain, CategoryLanguage, CategoryOther:
		return true
	default:
		return false
	}
}

// Well-known subject names used by placement rules.
const (
	SubjectSports           = "Sports"
	SubjectGeneralKnowledge = "General Knowledge"
)
