package domain

import "testing"

func TestParseAssetType(t *testing.T) {
	tests := []struct {
		in      string
		want    AssetType
		wantErr bool
	}{
		{"grid", AssetGrid, false},
		{"grids", AssetGrid, false},
		{"Heroes", AssetHero, false},
		{" logo ", AssetLogo, false},
		{"ICONS", AssetIcon, false},
		{"banner", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAssetType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAssetType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAssetTypes_DedupesAndOrders(t *testing.T) {
	got, err := ParseAssetTypes("icons,grids,icon,grid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []AssetType{AssetGrid, AssetIcon}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseAssetTypes_Empty(t *testing.T) {
	if _, err := ParseAssetTypes(" , "); err == nil {
		t.Fatal("expected error for empty selection")
	}
}

func TestAssetTable(t *testing.T) {
	tests := []struct {
		asset   AssetType
		apiPath string
		subdir  string
		ext     string
	}{
		{AssetGrid, "grids", "coverart", ".jpg"},
		{AssetHero, "heroes", "heroes", ".jpg"},
		{AssetLogo, "logos", "logos", ".jpg"},
		{AssetIcon, "icons", "icons", ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.asset.String(), func(t *testing.T) {
			if got := tt.asset.APIPath(); got != tt.apiPath {
				t.Errorf("APIPath = %q, want %q", got, tt.apiPath)
			}
			if got := tt.asset.Subdir(); got != tt.subdir {
				t.Errorf("Subdir = %q, want %q", got, tt.subdir)
			}
			if got := tt.asset.Extension(); got != tt.ext {
				t.Errorf("Extension = %q, want %q", got, tt.ext)
			}
		})
	}
}
