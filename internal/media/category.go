package media

// Category describes the orientation of a video, as derived from
// the aspect ratio of its first video stream. The category forms the
// prefix of the object storage key a video is published under.
type Category string

const (
	Landscape Category = "landscape"
	Portrait  Category = "portrait"
	Other     Category = "other"
)

// Open intervals used to recognise 16:9 and 9:16 footage. The
// bounds themselves are deliberately excluded.
const (
	landscapeMin = 1.6
	landscapeMax = 1.8
	portraitMin  = 0.5
	portraitMax  = 0.6
)

// Classify maps the given frame dimensions to a Category. Both width
// and height are expected to be positive; a non-positive height
// yields Other rather than dividing by zero.
func Classify(width int, height int) Category {
	if width <= 0 || height <= 0 {
		return Other
	}

	ratio := float64(width) / float64(height)
	switch {
	case ratio > landscapeMin && ratio < landscapeMax:
		return Landscape
	case ratio > portraitMin && ratio < portraitMax:
		return Portrait
	default:
		return Other
	}
}

func (c Category) String() string { return string(c) }
