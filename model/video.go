package model

import "time"

type VideoID string

type FolderID string

type LiveEventID string

// Category names a destination bucket in the hosting account's library.
// The empty value means no rule matched the video.
type Category string

const (
	CategoryNone     Category = ""
	CategoryWorship  Category = "Worship Services"
	CategoryWeddings Category = "Weddings and Memorials"
	CategoryClasses  Category = "Scott's Classes"
)

// VideoRecord is one video as returned by the hosting account's listing
// endpoint. The automaton only ever mutates Title and the parent folder;
// everything else is upstream state created by the broadcast pipeline.
type VideoRecord struct {
	ID         VideoID
	Title      string
	CreatedAt  time.Time
	ModifiedAt time.Time

	// Folder is the parent folder, "" when the video sits at library root.
	Folder FolderID

	// LiveEvent links the video to the broadcast session it was recorded
	// from, "" for plain uploads.
	LiveEvent LiveEventID

	// Playable is false while the video is a metadata placeholder whose
	// media has not finished processing. Such videos must not be touched.
	Playable bool
}
