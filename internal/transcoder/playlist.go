package transcoder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MasterPlaylist renders the top-level playlist text for the given ladder,
// referencing each rendition's sub-playlist in ladder order. This is the
// fallback path for when manifest generation is not delegated to the
// encoder; the advertised bandwidth follows the same ×1.5 overhead rule in
// either case.
func MasterPlaylist(ladder []Quality) string {
	var b strings.Builder

	b.WriteString("#EXTM3U\n")
	b.WriteString("#EXT-X-VERSION:3\n")

	for i, q := range ladder {
		fmt.Fprintf(&b, "#EXT-X-STREAM-INF:BANDWIDTH=%d,RESOLUTION=%s\n", q.Bandwidth(), q.Resolution())
		fmt.Fprintf(&b, "%s/%s\n", RenditionDirName(i), RenditionPlaylistName)
	}

	return b.String()
}

// WriteMasterPlaylist writes the fallback master playlist into outputDir.
// Callers must only invoke this once every rendition directory it
// references exists.
func WriteMasterPlaylist(outputDir string, ladder []Quality) error {
	path := filepath.Join(outputDir, MasterPlaylistName)

	for i := range ladder {
		dir := filepath.Join(outputDir, RenditionDirName(i))
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("rendition %s missing, refusing to write manifest: %w", RenditionDirName(i), err)
		}
	}

	if err := os.WriteFile(path, []byte(MasterPlaylist(ladder)), 0644); err != nil {
		return fmt.Errorf("write master playlist: %w", err)
	}

	return nil
}
