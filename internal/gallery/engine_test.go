package gallery

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"birdcam-gallery/internal/mediatypes"
)

func videoItems(timestamps ...int64) []Item {
	items := make([]Item, 0, len(timestamps))
	for _, ts := range timestamps {
		name := fmt.Sprintf("%d.mp4", ts)
		items = append(items, Item{Name: name, URL: "https://example.test/videos/" + name})
	}
	return items
}

func TestFilter(t *testing.T) {
	items := []Item{
		{Name: "20250313_100536_sparrow.jpg"},
		{Name: "20250313_101200_Bluejay.jpg"},
		{Name: "20250314_090000_sparrow.jpg"},
		{Name: "20250314_091500_cardinal.jpg"},
	}

	tests := []struct {
		name    string
		species string
		want    []string
	}{
		{
			name:    "empty filter keeps all",
			species: "",
			want:    []string{"20250313_100536_sparrow.jpg", "20250313_101200_Bluejay.jpg", "20250314_090000_sparrow.jpg", "20250314_091500_cardinal.jpg"},
		},
		{
			name:    "substring match",
			species: "sparrow",
			want:    []string{"20250313_100536_sparrow.jpg", "20250314_090000_sparrow.jpg"},
		},
		{
			name:    "case insensitive",
			species: "bluejay",
			want:    []string{"20250313_101200_Bluejay.jpg"},
		},
		{
			name:    "no match",
			species: "owl",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.species)

			names := make([]string, 0, len(got))
			for _, item := range got {
				names = append(names, item.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("Filter kept %d items, want %d", len(names), len(tt.want))
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Errorf("Filter[%d] = %q, want %q", i, names[i], tt.want[i])
				}
			}

			// Subset property: every kept item matches the filter.
			for _, item := range got {
				if tt.species != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(tt.species)) {
					t.Errorf("kept item %q does not contain %q", item.Name, tt.species)
				}
			}
		})
	}
}

func TestSortVideos(t *testing.T) {
	items := videoItems(1700000000, 1700200000, 1700100000)
	Sort(items, mediatypes.CategoryVideos)

	want := []string{"1700200000.mp4", "1700100000.mp4", "1700000000.mp4"}
	for i := range want {
		if items[i].Name != want[i] {
			t.Errorf("Sort[%d] = %q, want %q", i, items[i].Name, want[i])
		}
	}
}

func TestSortVideosUnparsableLast(t *testing.T) {
	items := []Item{
		{Name: "broken-a.mp4"},
		{Name: "1700000000.mp4"},
		{Name: "broken-b.mp4"},
		{Name: "1700100000.mp4"},
	}
	Sort(items, mediatypes.CategoryVideos)

	want := []string{"1700100000.mp4", "1700000000.mp4", "broken-a.mp4", "broken-b.mp4"}
	for i := range want {
		if items[i].Name != want[i] {
			t.Errorf("Sort[%d] = %q, want %q", i, items[i].Name, want[i])
		}
	}
}

func TestSortImagesByPrefix(t *testing.T) {
	// The first 15 characters encode date+time; the tail must not affect
	// ordering, only the stable original order breaks prefix ties.
	items := []Item{
		{Name: "20250313_100536_zebra_finch.jpg"},
		{Name: "20250314_090000_sparrow.jpg"},
		{Name: "20250313_100536_albatross.jpg"},
		{Name: "20250312_235959_cardinal.jpg"},
	}
	Sort(items, mediatypes.CategoryImages)

	want := []string{
		"20250314_090000_sparrow.jpg",
		"20250313_100536_zebra_finch.jpg",
		"20250313_100536_albatross.jpg",
		"20250312_235959_cardinal.jpg",
	}
	for i := range want {
		if items[i].Name != want[i] {
			t.Errorf("Sort[%d] = %q, want %q", i, items[i].Name, want[i])
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	items := videoItems(1700000000, 1700200000, 1700100000, 1700150000)
	Sort(items, mediatypes.CategoryVideos)

	once := make([]Item, len(items))
	copy(once, items)

	Sort(items, mediatypes.CategoryVideos)
	if !reflect.DeepEqual(items, once) {
		t.Error("sorting already-sorted input changed the order")
	}
}

func TestPageWindow(t *testing.T) {
	items := videoItems(make32Timestamps()...)

	tests := []struct {
		name     string
		page     int
		wantLen  int
		wantMore bool
	}{
		{
			name:     "first page",
			page:     1,
			wantLen:  15,
			wantMore: true,
		},
		{
			name:     "second page",
			page:     2,
			wantLen:  15,
			wantMore: true,
		},
		{
			name:     "final partial page",
			page:     3,
			wantLen:  2,
			wantMore: false,
		},
		{
			name:     "past the end",
			page:     4,
			wantLen:  0,
			wantMore: false,
		},
		{
			name:     "invalid page number",
			page:     0,
			wantLen:  0,
			wantMore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, more := Page(items, tt.page, DefaultPageSize)
			if len(window) != tt.wantLen {
				t.Errorf("Page(%d) returned %d items, want %d", tt.page, len(window), tt.wantLen)
			}
			if more != tt.wantMore {
				t.Errorf("Page(%d) more = %v, want %v", tt.page, more, tt.wantMore)
			}
		})
	}
}

func TestPagesPartitionSequence(t *testing.T) {
	items := videoItems(make32Timestamps()...)
	Sort(items, mediatypes.CategoryVideos)

	var reassembled []Item
	page := 1
	for {
		window, more := Page(items, page, DefaultPageSize)
		reassembled = append(reassembled, window...)
		if !more {
			break
		}
		page++
	}

	if !reflect.DeepEqual(reassembled, items) {
		t.Fatalf("concatenated pages do not reproduce the sequence: got %d items, want %d", len(reassembled), len(items))
	}

	seen := make(map[string]bool, len(reassembled))
	for _, item := range reassembled {
		if seen[item.Name] {
			t.Errorf("item %q appears on more than one page", item.Name)
		}
		seen[item.Name] = true
	}
}

func make32Timestamps() []int64 {
	timestamps := make([]int64, 0, 32)
	for i := int64(0); i < 32; i++ {
		timestamps = append(timestamps, 1700000000+i*3600)
	}
	return timestamps
}
