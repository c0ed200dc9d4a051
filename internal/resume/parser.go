package resume

import "resumatch/internal/model"

// Parser turns extracted resume text into a ResumeRecord.
// It holds only immutable rules and is safe for concurrent use.
type Parser struct {
	rules *Rules
}

// NewParser returns a parser driven by rules; nil selects DefaultRules.
func NewParser(rules *Rules) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Parser{rules: rules}
}

// Parse never fails. Text without any recognizable structure yields an empty
// record, which callers can detect with ResumeRecord.IsEmpty.
func (p *Parser) Parse(raw string) model.ResumeRecord {
	rec := model.ResumeRecord{Sections: map[model.SectionName][]string{}}

	text := Normalize(raw)
	if text == "" {
		return rec
	}

	rec.Contact = ExtractContact(text)
	rec.Name = DetectName(nonEmptyLines(collapseSpaces(text)), p.rules)
	rec.Sections = CleanSections(Segment(text, p.rules))

	if rec.IsEmpty() {
		return model.ResumeRecord{Sections: map[model.SectionName][]string{}}
	}
	return rec
}
