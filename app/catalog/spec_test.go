package catalog

import (
	"reflect"
	"testing"
)

func TestParseSpec_FullTitle(t *testing.T) {
	spec := ParseSpec("MacBook Pro 14 M4 10CPU 10GPU 16GB 512GB")

	if spec.ModelType != ModelTypePro {
		t.Errorf("ModelType = %q, want %q", spec.ModelType, ModelTypePro)
	}
	if spec.Chip != "M4" {
		t.Errorf("Chip = %q, want M4", spec.Chip)
	}
	if spec.ChipVariant != "" {
		t.Errorf("ChipVariant = %q, want empty", spec.ChipVariant)
	}
	if spec.ScreenSize != "14" {
		t.Errorf("ScreenSize = %q, want 14", spec.ScreenSize)
	}
	if spec.CPUCores != 10 {
		t.Errorf("CPUCores = %d, want 10", spec.CPUCores)
	}
	if spec.GPUCores != 10 {
		t.Errorf("GPUCores = %d, want 10", spec.GPUCores)
	}
	if spec.RAMGB != 16 {
		t.Errorf("RAMGB = %d, want 16", spec.RAMGB)
	}
	if spec.StorageGB != 512 {
		t.Errorf("StorageGB = %d, want 512", spec.StorageGB)
	}
	if spec.IdentityKey == "" {
		t.Error("IdentityKey is empty, want non-empty")
	}
	if spec.NeedsReview {
		t.Error("NeedsReview = true for a two-quantity title")
	}
}

func TestParseSpec_Titles(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		chip        string
		variant     string
		screen      string
		ramGB       int
		storageGB   int
		year        int
		identityKey string
	}{
		{
			name:        "air with tagged ram and ssd",
			title:       "MacBook Air 13.6 inch M3 | 8 core CPU | 8 core GPU | 8GB RAM | SSD 256GB",
			chip:        "M3",
			screen:      "13.6",
			ramGB:       8,
			storageGB:   256,
			identityKey: "m3-air-13.6-8-256gb",
		},
		{
			name:        "max variant with terabyte storage",
			title:       "MacBook Pro 16 M4 Max 16CPU 40GPU 48GB 1TB",
			chip:        "M4",
			variant:     "Max",
			screen:      "16",
			ramGB:       48,
			storageGB:   1024,
			identityKey: "m4-max-pro-16-48-1tb",
		},
		{
			name:        "pro variant with inch marker and ssd suffix",
			title:       "MacBook Pro 14 inch M3 Pro 11 core CPU 14 core GPU 18GB RAM 512GB SSD",
			chip:        "M3",
			variant:     "Pro",
			screen:      "14",
			ramGB:       18,
			storageGB:   512,
			identityKey: "m3-pro-pro-14-18-512gb",
		},
		{
			name:        "sparse title with year",
			title:       "Apple MacBook Air M1 256GB 2020",
			chip:        "M1",
			ramGB:       256,
			year:        2020,
			identityKey: "m1-air-256",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseSpec(tt.title)

			if spec.Chip != tt.chip {
				t.Errorf("Chip = %q, want %q", spec.Chip, tt.chip)
			}
			if spec.ChipVariant != tt.variant {
				t.Errorf("ChipVariant = %q, want %q", spec.ChipVariant, tt.variant)
			}
			if spec.ScreenSize != tt.screen {
				t.Errorf("ScreenSize = %q, want %q", spec.ScreenSize, tt.screen)
			}
			if spec.RAMGB != tt.ramGB {
				t.Errorf("RAMGB = %d, want %d", spec.RAMGB, tt.ramGB)
			}
			if spec.StorageGB != tt.storageGB {
				t.Errorf("StorageGB = %d, want %d", spec.StorageGB, tt.storageGB)
			}
			if spec.Year != tt.year {
				t.Errorf("Year = %d, want %d", spec.Year, tt.year)
			}
			if spec.IdentityKey != tt.identityKey {
				t.Errorf("IdentityKey = %q, want %q", spec.IdentityKey, tt.identityKey)
			}
		})
	}
}

func TestParseSpec_NormalizationInvariance(t *testing.T) {
	// Same configuration written in different case, punctuation and
	// whitespace must resolve to an identical identity key.
	variants := []string{
		"MacBook Pro 14 M4 10CPU 10GPU 16GB 512GB",
		"macbook pro 14 m4 10cpu 10gpu 16gb 512gb",
		`MacBook Pro 14" M4, 10 CPU, 10 GPU, 16GB, 512GB`,
		"MACBOOK PRO 14 M4 | 10CPU | 10GPU | 16GB | 512GB SSD",
	}

	want := ParseSpec(variants[0]).IdentityKey
	if want == "" {
		t.Fatal("reference identity key is empty")
	}

	for _, title := range variants[1:] {
		if got := ParseSpec(title).IdentityKey; got != want {
			t.Errorf("ParseSpec(%q).IdentityKey = %q, want %q", title, got, want)
		}
	}
}

func TestParseSpec_Deterministic(t *testing.T) {
	title := "MacBook Pro 16 M4 Max 16CPU 40GPU 48GB 1TB"

	first := ParseSpec(title)
	for i := 0; i < 10; i++ {
		if got := ParseSpec(title); !reflect.DeepEqual(got, first) {
			t.Fatalf("ParseSpec result changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestParseSpec_MissingChipHasNoIdentity(t *testing.T) {
	spec := ParseSpec("MacBook Pro 14 inch 16GB 512GB")

	if spec.IdentityKey != "" {
		t.Errorf("IdentityKey = %q, want empty when chip is absent", spec.IdentityKey)
	}
	if spec.RAMGB != 16 || spec.StorageGB != 512 {
		t.Errorf("RAM/storage = %d/%d, want 16/512", spec.RAMGB, spec.StorageGB)
	}
}

func TestParseSpec_FirstChipOccurrenceWins(t *testing.T) {
	spec := ParseSpec("MacBook Pro M4 Pro (upgrade from M1)")

	if spec.Chip != "M4" || spec.ChipVariant != "Pro" {
		t.Errorf("chip = %s %s, want M4 Pro", spec.Chip, spec.ChipVariant)
	}
}

func TestParseSpec_ReviewFlagForAmbiguousTitles(t *testing.T) {
	spec := ParseSpec("MacBook Pro 14 M4 16GB 512GB 2TB")

	if !spec.NeedsReview {
		t.Error("NeedsReview = false, want true for three GB/TB quantities")
	}
	if spec.StorageGB != 2048 {
		t.Errorf("StorageGB = %d, want 2048 (TB preferred)", spec.StorageGB)
	}
}

func TestParseSpec_DisplayName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"MacBook Pro 14 M4 10CPU 10GPU 16GB 512GB", `MacBook Pro 14" M4 10C 10G 16GB 512GB`},
		{"MacBook Pro 16 M4 Max 16CPU 40GPU 48GB 1TB", `MacBook Pro 16" M4 Max 16C 40G 48GB 1TB`},
		{"random accessory cable", ""},
	}

	for _, tt := range tests {
		if got := ParseSpec(tt.title).DisplayName; got != tt.want {
			t.Errorf("ParseSpec(%q).DisplayName = %q, want %q", tt.title, got, tt.want)
		}
	}
}
