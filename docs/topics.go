// Package docs holds the documentation topics of fin, embedded in the binary.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the topic listing the others, it is not part of [Names].
const index = "readme"

// GetTopic returns the markdown of a topic. "*" stands for all of them.
func GetTopic(name string) (string, error) {
	if name == "*" {
		return GetTopics(name)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		names, _ := Names()
		return "", fmt.Errorf("topic %q not found, available topics are %s: %w", name, strings.Join(names, ", "), err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of several topics, one after the other.
func GetTopics(names ...string) (string, error) {
	var expanded []string
	for _, name := range names {
		if name != "*" {
			expanded = append(expanded, name)
			continue
		}
		all, err := Names()
		if err != nil {
			return "", err
		}
		expanded = append(expanded, all...)
	}

	var b strings.Builder
	for _, name := range expanded {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Names returns the sorted names of the topics, the index excluded.
func Names() ([]string, error) {
	matches, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".md")
		if name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
