package domain

import (
	"regexp"
	"time"
)

// MaxNameCollisionRetries bounds the automatic rename loop on duplicate
// project names. The retry after the last rename surfaces the collision
// to the caller instead of looping forever.
const MaxNameCollisionRetries = 3

const collisionSuffixLayout = "2006-01-02 15:04"

var collisionSuffixPattern = regexp.MustCompile(` \(\d{4}-\d{2}-\d{2} \d{2}:\d{2}\)$`)

// RenameForCollision derives the retry name for a project whose name
// already exists: any previously appended timestamp suffix is stripped
// and a fresh " (YYYY-MM-DD HH:MM)" is appended to the base name.
func RenameForCollision(name string, now time.Time) string {
	base := collisionSuffixPattern.ReplaceAllString(name, "")
	return base + " (" + now.Format(collisionSuffixLayout) + ")"
}
