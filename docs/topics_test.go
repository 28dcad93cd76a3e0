package docs

import (
	"regexp"
	"slices"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics checks that the readme lists every topic, and only existing ones.
func TestTopics(t *testing.T) {
	readme, err := GetTopic(Readme)
	if err != nil {
		t.Fatalf("GetTopic(readme) unexpected error: %v", err)
	}
	var listed []string
	for _, m := range regexp.MustCompile(`(?m)^\*\s+([^:]+):.*$`).FindAllStringSubmatch(readme, -1) {
		listed = append(listed, m[1])
	}
	slices.Sort(listed)

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	if !slices.Equal(listed, all) {
		t.Errorf("readme lists %v, embedded topics are %v", listed, all)
	}
}

// TestTopicsHaveTitle checks that every topic starts with a level 1 heading.
func TestTopicsHaveTitle(t *testing.T) {
	all, _ := GetAllTopics()
	for _, topic := range append(all, Readme) {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("GetTopic() unexpected error: %v", err)
			}
			doc := goldmark.DefaultParser().Parse(text.NewReader([]byte(content)))
			h, ok := doc.FirstChild().(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic %q does not start with a title", topic)
			}
		})
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope) succeeded")
	}
	all, err := GetTopic("*")
	if err != nil || len(all) == 0 {
		t.Errorf("GetTopic(*) = %d bytes, %v", len(all), err)
	}
}
