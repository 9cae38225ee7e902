package vimeo

import "testing"

func TestExtractID(t *testing.T) {
	for _, tc := range []struct {
		uri, kind, want string
	}{
		{"/videos/912481231", "videos", "912481231"},
		{"/videos/912481231?fields=uri", "videos", "912481231"},
		{"/users/1234", "users", "1234"},
		{"/users/1234/projects/567", "projects", "567"},
		{"/users/1234/projects/567/videos/89", "videos", "89"},
		{"/live_events/3261302", "live_events", "3261302"},
		{"/videos/", "videos", ""},
		{"/videos/abc", "videos", ""},
		{"/channels/44", "videos", ""},
		{"", "videos", ""},
	} {
		if got := ExtractID(tc.uri, tc.kind); got != tc.want {
			t.Fatalf("ExtractID(%q, %q) = %q, want %q", tc.uri, tc.kind, got, tc.want)
		}
	}
}

func TestExtractFolderID(t *testing.T) {
	for _, tc := range []struct {
		uri, want string
	}{
		{"/users/1234/projects/567", "567"},
		{"/folders/567", "567"},
		{"/me/projects/567", "567"},
		{"/videos/88", ""},
	} {
		if got := ExtractFolderID(tc.uri); got != tc.want {
			t.Fatalf("ExtractFolderID(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}
