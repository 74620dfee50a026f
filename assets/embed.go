package assets

import (
	"embed"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.png *.json
var assetsFS embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return assetsFS
}

// Sprite and data keys shipped with the binary.
const (
	Hero           = "hero.png"
	HeroSheet      = "hero_sheet.png"
	HeroAnimations = "hero_anims.json"
)

// Defaults lists the embedded keys preloaded at startup.
func Defaults() []string {
	return []string{Hero, HeroSheet, HeroAnimations}
}

// cleanAssetPath turns a key, relative path or absolute path into the
// slash-separated name under the assets directory.
func cleanAssetPath(key string) string {
	s := filepath.ToSlash(key)
	if _, after, ok := strings.Cut(s, "/assets/"); ok && filepath.IsAbs(key) {
		return after
	}
	if filepath.IsAbs(key) {
		return path.Base(s)
	}
	return strings.TrimPrefix(s, "assets/")
}

func isImage(key string) bool {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
