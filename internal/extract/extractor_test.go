package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtract_UnsupportedExtension(t *testing.T) {
	e := New(zap.NewNop())

	tests := []string{"photo.png", "archive.zip", "script.sh", "noextension"}
	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			text, err := e.Extract(filename, []byte("irrelevant"))
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestExtract_TXT(t *testing.T) {
	e := New(zap.NewNop())

	t.Run("UTF-8 passthrough", func(t *testing.T) {
		text, err := e.Extract("resume.txt", []byte("  José González\n5 years of experience  "))
		require.NoError(t, err)
		assert.Equal(t, "José González\n5 years of experience", text)
	})

	t.Run("Latin-1 fallback", func(t *testing.T) {
		// "Résumé" encoded as latin-1, invalid as UTF-8.
		data := []byte{'R', 0xE9, 's', 'u', 'm', 0xE9}
		text, err := e.Extract("resume.txt", data)
		require.NoError(t, err)
		assert.Equal(t, "Résumé", text)
	})

	t.Run("Empty file", func(t *testing.T) {
		text, err := e.Extract("resume.txt", nil)
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestExtract_MalformedPDFDegradesToEmpty(t *testing.T) {
	e := New(zap.NewNop())

	tests := []struct {
		name string
		data []byte
	}{
		{"Not a PDF at all", []byte("plain text pretending to be a pdf")},
		{"Truncated header", []byte("%PDF-1.4\n")},
		{"Empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic and must not return an error: PDF failures
			// degrade to empty text so the email body can be used instead.
			text, err := e.Extract("resume.pdf", tt.data)
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestIsValidResume(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "Empty",
			text: "",
			want: false,
		},
		{
			name: "Too short",
			text: "experience education skills",
			want: false,
		},
		{
			name: "Long but no indicators",
			text: strings.Repeat("lorem ipsum dolor sit amet ", 10),
			want: false,
		},
		{
			name: "Long with two indicators",
			text: "I have experience and education but nothing else to mention here at all",
			want: false,
		},
		{
			name: "Long with three indicators",
			text: "Work experience: 5 years. Education: some. Skills: many. All described at length below.",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidResume(tt.text))
		})
	}
}
