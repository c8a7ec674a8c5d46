// Package parser extracts Logseq syntax from raw block content.
package parser

import (
	"regexp"
)

var (
	// [[page name]] — wiki-style page links
	linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

	// #tag or #[[multi word tag]] — tags
	tagPattern        = regexp.MustCompile(`(?:^|\s)#([a-zA-Z0-9_-]+)`)
	tagBracketPattern = regexp.MustCompile(`#\[\[([^\]]+)\]\]`)
)

// Links finds all [[page name]] references in content, deduplicated in
// first-seen order.
func Links(content string) []string {
	matches := linkPattern.FindAllStringSubmatch(content, -1)
	links := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			links = append(links, name)
			seen[name] = true
		}
	}
	return links
}

// Tags finds all #tag and #[[multi word tag]] references in content,
// deduplicated in first-seen order.
func Tags(content string) []string {
	seen := make(map[string]bool)
	var tags []string

	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		tag := m[1]
		if !seen[tag] {
			tags = append(tags, tag)
			seen[tag] = true
		}
	}

	for _, m := range tagBracketPattern.FindAllStringSubmatch(content, -1) {
		tag := m[1]
		if !seen[tag] {
			tags = append(tags, tag)
			seen[tag] = true
		}
	}

	return tags
}
