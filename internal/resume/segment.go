package resume

import (
	"strings"
	"unicode/utf8"

	"resumatch/internal/model"
)

// stateKind enumerates the segmenter states.
type stateKind int

const (
	// noActiveSection is the initial state; lines seen here are preamble and dropped.
	noActiveSection stateKind = iota
	// inSection means content lines belong to segmentState.section.
	inSection
)

type segmentState struct {
	kind    stateKind
	section model.SectionName
}

// Segmenter partitions resume lines into sections. It is a small state machine:
// a confirmed header flushes the buffered content into the active section and
// switches to the new one; any other line is content of the active section.
// A Segmenter is single-use and not safe for concurrent use.
type Segmenter struct {
	rules    *Rules
	state    segmentState
	buf      []string
	sections map[model.SectionName][]string
}

// NewSegmenter returns a segmenter in the no-active-section state.
func NewSegmenter(rules *Rules) *Segmenter {
	return &Segmenter{
		rules:    rules,
		sections: make(map[model.SectionName][]string),
	}
}

// Active returns the current section, if any.
func (s *Segmenter) Active() (model.SectionName, bool) {
	return s.state.section, s.state.kind == inSection
}

// Feed consumes one non-empty line. nextBlank reports whether the following raw
// line is blank or this is the last line.
func (s *Segmenter) Feed(line string, nextBlank bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if name, ok := s.rules.DetectHeader(line, nextBlank); ok {
		s.flush()
		s.state = segmentState{kind: inSection, section: name}
		return
	}
	if s.state.kind == noActiveSection {
		return
	}
	s.buf = append(s.buf, s.rules.SplitContent(s.state.section, line)...)
}

// Finish flushes pending content and returns the raw, uncleaned sections.
func (s *Segmenter) Finish() map[model.SectionName][]string {
	s.flush()
	return s.sections
}

// flush appends the buffer to the active section. Sections revisited later keep accumulating.
func (s *Segmenter) flush() {
	if s.state.kind == inSection && len(s.buf) > 0 {
		s.sections[s.state.section] = append(s.sections[s.state.section], s.buf...)
	}
	s.buf = nil
}

// DetectHeader reports whether line is a section header and which section it opens.
// A keyword hit only counts when the line is short and shaped like a header: it ends
// with a colon, is entirely uppercase, or is followed by a blank line.
func (r *Rules) DetectHeader(line string, nextBlank bool) (model.SectionName, bool) {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) >= r.MaxHeaderLength {
		return "", false
	}
	if !strings.HasSuffix(line, ":") && strings.ToUpper(line) != line && !nextBlank {
		return "", false
	}
	lower := strings.ToLower(line)
	for _, sec := range r.Sections {
		for _, kw := range sec.Keywords {
			if strings.Contains(lower, kw) {
				return sec.Name, true
			}
		}
	}
	return "", false
}

// SplitContent strips bullet glyphs from a content line and, for skills, splits it on
// the first separator present.
func (r *Rules) SplitContent(section model.SectionName, line string) []string {
	clean := strings.Trim(line, r.BulletGlyphs)
	if clean == "" {
		return nil
	}
	if section != model.SectionSkills {
		return []string{clean}
	}
	for _, sep := range r.SkillSeparators {
		if !strings.Contains(clean, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(clean, sep) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return parts
	}
	return []string{clean}
}

// Segment runs a fresh Segmenter over the raw lines of text.
func Segment(text string, rules *Rules) map[model.SectionName][]string {
	lines := strings.Split(text, "\n")
	seg := NewSegmenter(rules)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nextBlank := i == len(lines)-1 || strings.TrimSpace(lines[i+1]) == ""
		seg.Feed(line, nextBlank)
	}
	return seg.Finish()
}
