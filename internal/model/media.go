package model

import "strings"

// MediaRef is a stored media reference. Two representations coexist in the
// catalog: durable remote URLs written by ingestion, and legacy bare
// filenames from before object storage. The variant is decided here, once,
// and callers only ever see the resolved absolute URL.
type MediaRef string

func (m MediaRef) IsRemote() bool {
	s := string(m)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Resolve returns the absolute URL for the reference. Legacy filenames are
// served from legacyBase, remote references pass through untouched.
func (m MediaRef) Resolve(legacyBase string) string {
	if m.IsRemote() {
		return string(m)
	}
	if m == "" {
		return ""
	}
	return strings.TrimSuffix(legacyBase, "/") + "/" + string(m)
}
