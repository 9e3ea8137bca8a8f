package entities

// Task type names routed through the job queue.
const (
	TaskTypeThumbnail = "thumbnail:generate"
	TaskTypeWelcome   = "user:welcome"
)

// ThumbnailWidths are the rendition widths generated for every uploaded
// image, written next to the original as <handle>_<width>.
var ThumbnailWidths = []uint{500, 250, 100}

// ThumbnailPayload is the message enqueued once per image upload.
type ThumbnailPayload struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// WelcomePayload is the message enqueued once per registration.
type WelcomePayload struct {
	UserID string `json:"userId"`
}
