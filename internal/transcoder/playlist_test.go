package transcoder

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMasterPlaylist(t *testing.T) {
	want := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=7500000,RESOLUTION=1920x1080\n" +
		"stream_0/playlist.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=3750000,RESOLUTION=1280x720\n" +
		"stream_1/playlist.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=1500000,RESOLUTION=854x480\n" +
		"stream_2/playlist.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=900000,RESOLUTION=640x360\n" +
		"stream_3/playlist.m3u8\n"

	if got := MasterPlaylist(DefaultLadder()); got != want {
		t.Errorf("MasterPlaylist() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteMasterPlaylist(t *testing.T) {
	dir := t.TempDir()
	ladder := DefaultLadder()

	for i := range ladder {
		if err := os.MkdirAll(filepath.Join(dir, RenditionDirName(i)), 0755); err != nil {
			t.Fatal(err)
		}
	}

	if err := WriteMasterPlaylist(dir, ladder); err != nil {
		t.Fatalf("WriteMasterPlaylist() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, MasterPlaylistName))
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	if string(data) != MasterPlaylist(ladder) {
		t.Error("Written manifest does not match rendered playlist")
	}
}

func TestWriteMasterPlaylistRefusesMissingRendition(t *testing.T) {
	dir := t.TempDir()
	ladder := DefaultLadder()

	// Only three of four rendition directories exist.
	for i := 0; i < 3; i++ {
		if err := os.MkdirAll(filepath.Join(dir, RenditionDirName(i)), 0755); err != nil {
			t.Fatal(err)
		}
	}

	if err := WriteMasterPlaylist(dir, ladder); err == nil {
		t.Fatal("Expected error when a referenced rendition is missing")
	}

	if _, err := os.Stat(filepath.Join(dir, MasterPlaylistName)); !os.IsNotExist(err) {
		t.Error("Manifest must not be written when a rendition is missing")
	}
}
