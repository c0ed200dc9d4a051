// Command resumecli parses a resume file and optionally matches it against a job
// description, printing the result as JSON. Nothing is stored.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"resumatch/internal/config"
	"resumatch/internal/extract"
	"resumatch/internal/logger"
	"resumatch/internal/match"
	"resumatch/internal/model"
	"resumatch/internal/nlp"
	"resumatch/internal/resume"
)

type output struct {
	Resume model.ResumeRecord `json:"resume"`
	Match  *model.MatchResult `json:"match,omitempty"`
}

type options struct {
	file         string
	jd           string
	rules        string
	annotatorURL string
	timeout      time.Duration
	pretty       bool
	logLevel     string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "resumecli:", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("resumecli", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.file, "file", "f", "", "resume file (pdf, docx or txt)")
	fs.StringVarP(&o.jd, "jd", "j", "", "job description file to match against (pdf or txt)")
	fs.StringVar(&o.rules, "rules", os.Getenv("PARSER_RULES_FILE"), "YAML parser rule overrides")
	fs.StringVar(&o.annotatorURL, "annotator-url", os.Getenv("ANNOTATOR_URL"), "annotation service URL; empty uses the built-in lexicon")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "annotation deadline")
	fs.BoolVarP(&o.pretty, "pretty", "p", false, "indent JSON output")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.file == "" {
		return o, errors.New("--file is required")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	log := logger.New(stderr, config.LogConfig{Level: o.logLevel, Format: "pretty"}, time.Local)

	rules, err := resume.LoadRulesFile(o.rules)
	if err != nil {
		return err
	}
	extractor := extract.New()

	text, err := readText(extractor, o.file)
	if err != nil {
		return err
	}
	out := output{Resume: resume.NewParser(rules).Parse(text)}
	log.Debug().Str("file", o.file).Int("sections", len(out.Resume.Sections)).Msg("resume parsed")

	if o.jd != "" {
		jd, err := readText(extractor, o.jd)
		if err != nil {
			return err
		}
		res, err := matchResume(ctx, log, o, out.Resume, jd)
		if err != nil {
			return err
		}
		out.Match = &res
	}

	enc := json.NewEncoder(stdout)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func matchResume(ctx context.Context, log zerolog.Logger, o options, rec model.ResumeRecord, jd string) (model.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	m := match.NewMatcher(nlp.NewAnnotator(o.annotatorURL, o.timeout))
	res, err := m.Match(ctx, rec, jd)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("match: %w", err)
	}
	log.Debug().Float64("score", res.MatchScore).Msg("matched")
	return res, nil
}

func readText(e *extract.Extractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return e.Extract(filepath.Base(path), "", data)
}
