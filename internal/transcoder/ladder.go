package transcoder

import "fmt"

// Quality is one entry of the quality ladder. Bitrates are in kbps, matching
// the encoder CLI's k-suffix convention.
type Quality struct {
	Name          string
	Width         int
	Height        int
	Bitrate       int // target video bitrate
	MaxRate       int // peak video bitrate
	BufSize       int // rate-control buffer
	AudioBitrate  int
	AudioChannels int
}

// Resolution returns the "WxH" form used in playlists and filter graphs.
func (q Quality) Resolution() string {
	return fmt.Sprintf("%dx%d", q.Width, q.Height)
}

// Bandwidth returns the bandwidth advertised for this rendition in a master
// playlist: the target bitrate in bits/sec plus 50% container and
// segmenting overhead.
func (q Quality) Bandwidth() int {
	return q.Bitrate * 1000 * 3 / 2
}

// defaultLadder is ordered highest quality first. The position of each entry
// is its encoder stream index and its stream_<i> directory index.
var defaultLadder = []Quality{
	{Name: "1080p", Width: 1920, Height: 1080, Bitrate: 5000, MaxRate: 5350, BufSize: 7500, AudioBitrate: 192, AudioChannels: 2},
	{Name: "720p", Width: 1280, Height: 720, Bitrate: 2500, MaxRate: 2675, BufSize: 3750, AudioBitrate: 128, AudioChannels: 2},
	{Name: "480p", Width: 854, Height: 480, Bitrate: 1000, MaxRate: 1070, BufSize: 1500, AudioBitrate: 96, AudioChannels: 2},
	{Name: "360p", Width: 640, Height: 360, Bitrate: 600, MaxRate: 642, BufSize: 900, AudioBitrate: 64, AudioChannels: 2},
}

// DefaultLadder returns the fixed rendition ladder, ordered from highest to
// lowest resolution. Callers receive a copy; the ladder is never mutated at
// runtime.
func DefaultLadder() []Quality {
	ladder := make([]Quality, len(defaultLadder))
	copy(ladder, defaultLadder)
	return ladder
}
