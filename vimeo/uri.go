package vimeo

import "strings"

// ExtractID returns the numeric identifier following the last /{kind}/
// segment of an API locator, or "" when the segment is absent or the
// identifier is not purely numeric. Locators look like "/videos/912481"
// or "/users/1234/projects/567".
func ExtractID(uri, kind string) string {
	marker := "/" + kind + "/"
	i := strings.LastIndex(uri, marker)
	if i < 0 {
		return ""
	}
	id := uri[i+len(marker):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return ""
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return id
}

// ExtractFolderID accepts both spellings the platform uses for folder
// locators, "/users/{uid}/projects/{id}" and "/folders/{id}".
func ExtractFolderID(uri string) string {
	if id := ExtractID(uri, "projects"); id != "" {
		return id
	}
	return ExtractID(uri, "folders")
}
