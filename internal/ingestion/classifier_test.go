package ingestion

import "testing"

// TestIsApplication_SubjectKeyword tests that a single subject keyword is enough
func TestIsApplication_SubjectKeyword(t *testing.T) {
	tests := []struct {
		name    string
		subject string
	}{
		{
			name:    "Application keyword",
			subject: "Application for Software Engineer",
		},
		{
			name:    "Resume keyword",
			subject: "My resume for your review",
		},
		{
			name:    "Uppercase keyword",
			subject: "JOB OPENING - please consider me",
		},
		{
			name:    "Keyword inside word",
			subject: "Reapplying for the role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsApplication(tt.subject, "") {
				t.Errorf("IsApplication(%q, \"\") = false, want true", tt.subject)
			}
		})
	}
}

// TestIsApplication_BodyThreshold tests the two-keyword corroboration rule for body text
func TestIsApplication_BodyThreshold(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "No keywords",
			body: "Quarterly report attached for review.",
			want: false,
		},
		{
			name: "Single keyword is not enough",
			body: "My resume is attached.",
			want: false,
		},
		{
			name: "Two distinct keywords",
			body: "I am interested in this job at your company.",
			want: true,
		},
		{
			name: "Empty body",
			body: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsApplication("Meeting notes", tt.body)
			if got != tt.want {
				t.Errorf("IsApplication(_, %q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestIsResumeAttachment(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"Resume.PDF", true},
		{"cv.docx", true},
		{"old_cv.doc", true},
		{"notes.txt", true},
		{"photo.png", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := IsResumeAttachment(tt.filename); got != tt.want {
				t.Errorf("IsResumeAttachment(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
