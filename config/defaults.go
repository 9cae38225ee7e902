package config

import (
	"time"

	"automaton/classify"
	"automaton/model"
)

// The compiled-in tables mirror the deployment this service automates.
// A rules file replaces them wholesale; the folder and exclusion env
// overrides patch them in place.

func defaultRules() []classify.Rule {
	morning := []classify.Window{
		{Start: classify.Clock(9, 20), End: classify.Clock(12, 0)},
	}
	sundayServices := []classify.ServiceTime{
		{Label: "9:30 AM", Before: 11},
		{Label: "11:00 AM"},
	}
	worshipWindows := []classify.Window{
		{Days: []time.Weekday{time.Saturday}, Start: classify.Clock(18, 30), End: classify.Clock(20, 0)},
		{Days: []time.Weekday{time.Sunday}, Start: classify.Clock(10, 0), End: classify.Clock(14, 0)},
	}

	return []classify.Rule{
		{
			Name:     "Worship Service - Traditional",
			Category: model.CategoryWorship,
			Event:    "3261302",
			Windows:  morning,
			Services: sundayServices,
		},
		{
			Name:     "Worship Service - Contemporary",
			Category: model.CategoryWorship,
			Event:    "4590739",
			Windows:  morning,
			Services: sundayServices,
		},
		{
			Name:     "Memorials at St. Andrew",
			Category: model.CategoryWeddings,
			Event:    "4972294",
		},
		{
			Name:     "Weddings at St. Andrew",
			Category: model.CategoryWeddings,
			Event:    "3867304",
		},
		{
			Name:     "Class - Scott Engle's Tuesday Class",
			Category: model.CategoryClasses,
			Event:    "3251895",
		},
		{
			Name:     "Class - Something Else Class",
			Category: model.CategoryClasses,
			Event:    "3378887",
		},
		{
			Name:     "worship titles",
			Category: model.CategoryWorship,
			Keywords: []string{"worship", "traditional", "contemporary"},
			Windows:  worshipWindows,
			Outside:  model.CategoryWeddings,
		},
		{
			Name:     "memorial and wedding titles",
			Category: model.CategoryWeddings,
			Keywords: []string{"memorial", "wedding"},
		},
		{
			Name:     "class titles",
			Category: model.CategoryClasses,
			Keywords: []string{"class", "scott"},
		},
	}
}

func defaultFolders() map[model.Category]model.FolderID {
	return map[model.Category]model.FolderID{
		model.CategoryWorship:  "15749517",
		model.CategoryWeddings: "2478125",
		model.CategoryClasses:  "15680946",
	}
}

func defaultExcluded() []model.FolderID {
	return []model.FolderID{"11103430", "182762", "8219992"}
}
