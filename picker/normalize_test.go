package picker_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/photo-wall/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		raw       picker.RawItem
		wantShape picker.Shape
		wantItem  picker.Item
	}{
		{
			name:      "flat",
			raw:       picker.RawItem{ID: "a", BaseURL: "https://img/a"},
			wantShape: picker.ShapeFlat,
			wantItem:  picker.Item{ExternalID: "a", BaseURL: "https://img/a"},
		},
		{
			name:      "flat with media item id",
			raw:       picker.RawItem{ID: "row-1", MediaItemID: "m-1", BaseURL: "https://img/m1"},
			wantShape: picker.ShapeFlat,
			wantItem:  picker.Item{ExternalID: "m-1", BaseURL: "https://img/m1"},
		},
		{
			name:      "nested media item",
			raw:       picker.RawItem{MediaItem: &picker.RawMediaItem{ID: "b", BaseURL: "https://img/b"}},
			wantShape: picker.ShapeNestedMediaItem,
			wantItem:  picker.Item{ExternalID: "b", BaseURL: "https://img/b"},
		},
		{
			name:      "nested media file",
			raw:       picker.RawItem{ID: "c", Type: "PHOTO", MediaFile: &picker.RawMediaFile{BaseURL: "https://img/c", MimeType: "image/jpeg"}},
			wantShape: picker.ShapeNestedMediaFile,
			wantItem:  picker.Item{ExternalID: "c", BaseURL: "https://img/c"},
		},
		{
			name:      "missing base url",
			raw:       picker.RawItem{ID: "d"},
			wantShape: picker.ShapeUnrecognized,
		},
		{
			name:      "missing id",
			raw:       picker.RawItem{BaseURL: "https://img/e"},
			wantShape: picker.ShapeUnrecognized,
		},
		{
			name:      "empty nested media file",
			raw:       picker.RawItem{ID: "f", MediaFile: &picker.RawMediaFile{}},
			wantShape: picker.ShapeUnrecognized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shape, item := picker.Classify(tc.raw)
			assert.Equal(t, tc.wantShape, shape, shape.String())
			assert.Equal(t, tc.wantItem, item)
		})
	}
}

func TestNormalize_DropsInvalidItems(t *testing.T) {
	raws := []picker.RawItem{
		{ID: "a", BaseURL: "https://img/a"},
		{MediaItem: &picker.RawMediaItem{ID: "b", BaseURL: "https://img/b"}},
		{ID: "no-url"},
	}

	got := picker.Normalize(raws)

	want := picker.Normalized{
		Items: []picker.Item{
			{ExternalID: "a", BaseURL: "https://img/a"},
			{ExternalID: "b", BaseURL: "https://img/b"},
		},
		RawCount:       3,
		InvalidCount:   1,
		InvalidSamples: []picker.RawItem{{ID: "no-url"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_CapsInvalidSamples(t *testing.T) {
	raws := make([]picker.RawItem, 5)
	for i := range raws {
		raws[i] = picker.RawItem{Type: "PHOTO"}
	}

	got := picker.Normalize(raws)

	require.Empty(t, got.Items)
	assert.Equal(t, 5, got.RawCount)
	assert.Equal(t, 5, got.InvalidCount)
	assert.Len(t, got.InvalidSamples, 3)
}

func TestNormalize_Empty(t *testing.T) {
	got := picker.Normalize(nil)

	assert.Empty(t, got.Items)
	assert.Zero(t, got.RawCount)
	assert.Zero(t, got.InvalidCount)
}
