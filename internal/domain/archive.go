package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Layout of a project folder:
//
//	.codeplan/
//	├── config.yaml
//	├── FEAT-001.md        (active)
//	└── archive/
//	    └── 2025-11/
//	        └── TASK-003.md (archived)
const (
	FolderName = ".codeplan"
	ConfigFile = "config.yaml"
	ReadmeFile = "README.md"
	ArchiveDir = "archive"
)

// IsArchived reports whether a path lies under an archive/ segment.
// Backslashes are normalized so Windows-style paths are recognized too.
func IsArchived(p string) bool {
	normalized := strings.ReplaceAll(p, `\`, "/")
	return strings.Contains(normalized, "/"+ArchiveDir+"/") ||
		strings.HasPrefix(normalized, ArchiveDir+"/")
}

// FilterActive drops archived paths from a listing
func FilterActive(paths []string) []string {
	var active []string
	for _, p := range paths {
		if !IsArchived(p) {
			active = append(active, p)
		}
	}
	return active
}

// BucketName returns the YYYY-MM bucket for t
func BucketName(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ArchiveFolderFor returns archive/YYYY-MM for the archive date t.
// The bucket reflects when the item was archived, not its own dates.
func ArchiveFolderFor(t time.Time) string {
	return path.Join(ArchiveDir, BucketName(t))
}

// ArchivePath returns archive/YYYY-MM/filename
func ArchivePath(filename string, t time.Time) string {
	return path.Join(ArchiveFolderFor(t), filename)
}

// IsItemDocument reports whether a directory entry name is an item document.
// README.md lives next to items and is never parsed.
func IsItemDocument(name string) bool {
	return strings.HasSuffix(name, ".md") && name != ReadmeFile
}
