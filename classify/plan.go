package classify

import (
	"automaton/model"
)

// Actions lists the mutations that bring one video in line with a
// decision. Zero values mean no-op.
type Actions struct {
	Title      string
	MoveTo     model.FolderID
	RemoveFrom model.FolderID
}

func (a Actions) None() bool {
	return a.Title == "" && a.MoveTo == "" && a.RemoveFrom == ""
}

// Plan compares the video's current state against the decision and
// returns only the work that is actually needed. Running it again after
// the actions are applied yields the zero value. An unclassified video
// still gets its date prefix; it just stays where it is.
func (rs *Ruleset) Plan(v model.VideoRecord, d Decision) Actions {
	var a Actions
	local := v.CreatedAt.In(rs.Zone)
	if want := CanonicalTitle(d, local); want != v.Title {
		a.Title = want
	}
	if d.Category == model.CategoryNone {
		return a
	}
	dest, ok := rs.Folders[d.Category]
	if !ok || dest == "" || v.Folder == dest {
		return a
	}
	a.MoveTo = dest
	// Folder membership is additive on the platform. A real move needs
	// an explicit removal from the previous folder, unless that folder
	// is excluded from management.
	if v.Folder != "" && !rs.IsExcluded(v.Folder) {
		a.RemoveFrom = v.Folder
	}
	return a
}
