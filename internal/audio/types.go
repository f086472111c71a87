package audio

// Sound identifies a feedback sound effect.
type Sound int

// Sound effect IDs
const (
	SndSelect Sound = iota // grid cell toggled
	SndPage                // page turned
	SndEdge                // clamped move or rejected transition
	SndOpen                // viewer entered
	SndSize
)

// SampleRate is the rate of the audio context; sounds are resampled to it.
const SampleRate = 44100

// soundFiles lists the file loaded for each sound from the sounds directory.
var soundFiles = [SndSize]string{
	SndSelect: "select.ogg",
	SndPage:   "page.ogg",
	SndEdge:   "edge.ogg",
	SndOpen:   "open.ogg",
}

// String returns the file name of the sound.
func (s Sound) String() string {
	if s < 0 || s >= SndSize {
		return "unknown"
	}
	return soundFiles[s]
}
