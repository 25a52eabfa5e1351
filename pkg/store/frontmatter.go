package store

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter splits a goal.md file into YAML frontmatter and notes body.
func ParseFrontmatter(content string) (*Goal, error) {
	return parseGoalFile(content, time.Time{})
}

// parseGoalFile is ParseFrontmatter for a file last modified at modTime,
// which stands in for a missing created date.
func parseGoalFile(content string, modTime time.Time) (*Goal, error) {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, frontmatterDelimiter) {
		// No frontmatter, the whole file is notes
		goal := &Goal{Body: content}
		normalize(goal, modTime)
		return goal, nil
	}

	rest := content[len(frontmatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx == -1 {
		return nil, fmt.Errorf("unclosed frontmatter delimiter")
	}

	yamlContent := rest[:idx]
	body := strings.TrimLeft(rest[idx+len("\n"+frontmatterDelimiter):], "\n")

	var goal Goal
	if err := yaml.Unmarshal([]byte(yamlContent), &goal); err != nil {
		return nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}

	goal.Body = body
	normalize(&goal, modTime)
	return &goal, nil
}

// normalize fills in what hand-written goal files leave out. A file without
// a version is treated as never synced, version 1. A missing created date
// falls back to updated, then modTime, then now, so the schedule never
// starts at year one.
func normalize(g *Goal, modTime time.Time) {
	if g.Created.IsZero() {
		switch {
		case !g.Updated.IsZero():
			g.Created = g.Updated
		case !modTime.IsZero():
			g.Created = modTime
		default:
			g.Created = time.Now()
		}
	}
	if g.Status == "" {
		g.Status = StatusActive
	}
	if g.Version < 1 {
		g.Version = 1
	}
	for i := range g.Milestones {
		g.Milestones[i].Month = strings.TrimSpace(g.Milestones[i].Month)
	}
}

// SerializeFrontmatter renders a Goal back to markdown with YAML frontmatter.
func SerializeFrontmatter(g *Goal) (string, error) {
	yamlBytes, err := yaml.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("serializing frontmatter YAML: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	b.WriteString(strings.TrimRight(string(yamlBytes), "\n"))
	b.WriteString("\n" + frontmatterDelimiter + "\n")
	if g.Body != "" {
		b.WriteString("\n")
		b.WriteString(g.Body)
		if !strings.HasSuffix(g.Body, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
