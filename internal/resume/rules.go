package resume

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"resumatch/internal/model"
)

// defaultBulletGlyphs are stripped from both ends of every content line.
const defaultBulletGlyphs = "•-→⚫⚪●○◆◇■□▪▫⬤∙⋄⚬⭐✦✧✪✫✬✭✮✯✰★☆✡\ufe0e✩*⁕⁎⁑⋆∗⚝✢✣✤✥✱✲✳✴✵✶✷✸✹✺✻✼✽✾✿❀❁❂❃❄❅❆❇❈❉❊❋ \t\u00a0"

// SectionRule maps a section to the lowercase keywords that announce it.
type SectionRule struct {
	Name     model.SectionName `yaml:"name"`
	Keywords []string          `yaml:"keywords"`
}

// Rules is the data that drives the parsing heuristics. Sections are tested in order,
// so the first rule whose keyword appears in a header line wins.
type Rules struct {
	Sections        []SectionRule `yaml:"sections"`
	BulletGlyphs    string        `yaml:"bullet_glyphs"`
	SkillSeparators []string      `yaml:"skill_separators"`
	NameExcludes    []string      `yaml:"name_excludes"`
	NameScanLines   int           `yaml:"name_scan_lines"`
	MaxNameLength   int           `yaml:"max_name_length"`
	MaxHeaderLength int           `yaml:"max_header_length"`
}

// DefaultRules returns a fresh copy of the built-in rule set.
func DefaultRules() *Rules {
	return &Rules{
		Sections: []SectionRule{
			{Name: model.SectionEducation, Keywords: []string{"education", "academic background", "academic qualification", "academic history", "degree"}},
			{Name: model.SectionSkills, Keywords: []string{"skills", "technical skills", "technologies", "competencies", "expertise", "proficiencies", "tools"}},
			{Name: model.SectionExperience, Keywords: []string{"experience", "work experience", "employment history", "professional experience", "work history"}},
			{Name: model.SectionProjects, Keywords: []string{"projects", "project experience", "key projects", "personal projects", "academic projects"}},
			{Name: model.SectionCertifications, Keywords: []string{"certifications", "certificates", "professional certifications", "credentials"}},
			{Name: model.SectionAwards, Keywords: []string{"awards", "honors", "achievements", "recognition", "accomplishments"}},
			{Name: model.SectionPublications, Keywords: []string{"publications", "research papers", "papers", "articles", "journals"}},
		},
		BulletGlyphs:    defaultBulletGlyphs,
		SkillSeparators: []string{",", "|", "•", "/", ";"},
		NameExcludes:    []string{"resume", "cv", "curriculum", "vitae", "profile"},
		NameScanLines:   5,
		MaxNameLength:   50,
		MaxHeaderLength: 50,
	}
}

// LoadRules decodes a YAML rule override on top of the defaults.
// Fields absent from the document keep their default values.
func LoadRules(r io.Reader) (*Rules, error) {
	rules := DefaultRules()
	if err := yaml.NewDecoder(r).Decode(rules); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadRulesFile reads rules from path. An empty path yields the defaults.
func LoadRulesFile(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}

// Validate checks that every section is known and every numeric limit is positive.
func (r *Rules) Validate() error {
	if len(r.Sections) == 0 {
		return errors.New("rules: at least one section is required")
	}
	for _, s := range r.Sections {
		if !s.Name.Valid() {
			return fmt.Errorf("rules: unknown section %q", s.Name)
		}
		if len(s.Keywords) == 0 {
			return fmt.Errorf("rules: section %q has no keywords", s.Name)
		}
	}
	if r.NameScanLines <= 0 || r.MaxNameLength <= 0 || r.MaxHeaderLength <= 0 {
		return errors.New("rules: limits must be positive")
	}
	return nil
}
