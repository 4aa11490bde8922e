package picker

// RawItem is one entry of a picker listing as Google returned it. Three
// layouts have been observed over the life of the API.
type RawItem struct {
	ID          string        `json:"id,omitempty"`
	MediaItemID string        `json:"mediaItemId,omitempty"`
	BaseURL     string        `json:"baseUrl,omitempty"`
	Type        string        `json:"type,omitempty"`
	MediaItem   *RawMediaItem `json:"mediaItem,omitempty"`
	MediaFile   *RawMediaFile `json:"mediaFile,omitempty"`
}

type RawMediaItem struct {
	ID      string `json:"id,omitempty"`
	BaseURL string `json:"baseUrl,omitempty"`
}

type RawMediaFile struct {
	BaseURL  string `json:"baseUrl,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Item is a picked photo reduced to what gets stored.
type Item struct {
	ExternalID string
	BaseURL    string
}

// Shape is the recognized layout of a RawItem.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeFlat
	ShapeNestedMediaItem
	ShapeNestedMediaFile
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNestedMediaItem:
		return "nested_media_item"
	case ShapeNestedMediaFile:
		return "nested_media_file"
	default:
		return "unrecognized"
	}
}

const maxInvalidSamples = 3

// Normalized is the outcome of reading a whole listing.
type Normalized struct {
	Items          []Item
	RawCount       int
	InvalidCount   int
	InvalidSamples []RawItem
}

// Classify matches raw against the known layouts. The ID is taken from
// mediaItemId, then mediaItem.id, then id. The Item is only meaningful when
// the shape is not ShapeUnrecognized.
func Classify(raw RawItem) (Shape, Item) {
	id := raw.MediaItemID
	if id == "" && raw.MediaItem != nil {
		id = raw.MediaItem.ID
	}
	if id == "" {
		id = raw.ID
	}
	if id == "" {
		return ShapeUnrecognized, Item{}
	}

	switch {
	case raw.BaseURL != "":
		return ShapeFlat, Item{ExternalID: id, BaseURL: raw.BaseURL}
	case raw.MediaItem != nil && raw.MediaItem.BaseURL != "":
		return ShapeNestedMediaItem, Item{ExternalID: id, BaseURL: raw.MediaItem.BaseURL}
	case raw.MediaFile != nil && raw.MediaFile.BaseURL != "":
		return ShapeNestedMediaFile, Item{ExternalID: id, BaseURL: raw.MediaFile.BaseURL}
	default:
		return ShapeUnrecognized, Item{}
	}
}

// Normalize classifies every raw item, keeping the first few rejects for
// diagnostics.
func Normalize(raws []RawItem) Normalized {
	n := Normalized{
		Items:    make([]Item, 0, len(raws)),
		RawCount: len(raws),
	}
	for _, raw := range raws {
		shape, item := Classify(raw)
		if shape == ShapeUnrecognized {
			n.InvalidCount++
			if len(n.InvalidSamples) < maxInvalidSamples {
				n.InvalidSamples = append(n.InvalidSamples, raw)
			}
			continue
		}
		n.Items = append(n.Items, item)
	}
	return n
}
