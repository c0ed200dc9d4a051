package model

// SectionName labels a block of resume content. The set is closed.
type SectionName string

const (
	SectionEducation      SectionName = "education"
	SectionSkills         SectionName = "skills"
	SectionExperience     SectionName = "experience"
	SectionProjects       SectionName = "projects"
	SectionCertifications SectionName = "certifications"
	SectionAwards         SectionName = "awards"
	SectionPublications   SectionName = "publications"
)

// SectionNames lists every section in canonical order.
var SectionNames = []SectionName{
	SectionEducation,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionCertifications,
	SectionAwards,
	SectionPublications,
}

// Valid reports whether s belongs to the closed section enumeration.
func (s SectionName) Valid() bool {
	for _, n := range SectionNames {
		if n == s {
			return true
		}
	}
	return false
}

// ContactInfo holds at most one value per field; empty means not found.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Location string `json:"location,omitempty"`
}

// IsZero reports whether no contact field was found.
func (c ContactInfo) IsZero() bool {
	return c == ContactInfo{}
}

// ResumeRecord is the structured result of parsing resume text.
// A section key is present only when its entry list is non-empty.
type ResumeRecord struct {
	Name     string                   `json:"name,omitempty"`
	Contact  ContactInfo              `json:"contact"`
	Sections map[SectionName][]string `json:"sections"`
}

// IsEmpty reports whether parsing yielded nothing useful.
func (r ResumeRecord) IsEmpty() bool {
	return r.Name == "" && r.Contact.IsZero() && len(r.Sections) == 0
}

// Section returns the entries of a section, or nil when absent.
func (r ResumeRecord) Section(name SectionName) []string {
	return r.Sections[name]
}
