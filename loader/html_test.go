package loader

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"plain text", "  Vote for me  ", "Vote for me"},
		{"paragraphs", "<p>Hello   there</p><p>Vote <b>Ada</b></p>", "Hello there\n\nVote Ada"},
		{"list", "<h3>Plans</h3><ul><li>Cheaper food</li><li>Longer library hours</li></ul>",
			"Plans\n\n• Cheaper food\n\n• Longer library hours"},
		{"nested paragraph in list", "<ul><li><p>One</p></li></ul>", "One"},
		{"bare inline html", "<span>Just <i>this</i></span>", "Just this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
