package file

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{2048 << 40, "2048.00 TB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"photo.JPG", TypeImage},
		{"scan.png", TypeImage},
		{"clip.mp4", TypeVideo},
		{"song.mp3", TypeAudio},
		{"report.pdf", TypePDF},
		{"notes.txt", TypeText},
		{"archive.xyz", TypeOther},
		{"Makefile", TypeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestExtensionAllowed(t *testing.T) {
	allowed := []string{"txt", "pdf", ".png"}

	tests := []struct {
		name    string
		allowed []string
		want    bool
	}{
		{"a.txt", allowed, true},
		{"A.PDF", allowed, true},
		{"image.png", allowed, true},
		{"tool.exe", allowed, false},
		{"README", allowed, false},
		{"archive.tar.txt", allowed, true},
		{"README", nil, true},
		{"tool.exe", []string{}, true},
	}
	for _, tt := range tests {
		if got := ExtensionAllowed(tt.name, tt.allowed); got != tt.want {
			t.Errorf("ExtensionAllowed(%q, %v) = %v, want %v", tt.name, tt.allowed, got, tt.want)
		}
	}
}
