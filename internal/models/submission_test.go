package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{SubmissionPending, SubmissionCompleted, true},
		{SubmissionPending, SubmissionVerified, true},
		{SubmissionCompleted, SubmissionVerified, true},
		{SubmissionPending, SubmissionPending, false},
		{SubmissionCompleted, SubmissionCompleted, false},
		{SubmissionVerified, SubmissionVerified, false},
		{SubmissionCompleted, SubmissionPending, false},
		{SubmissionVerified, SubmissionCompleted, false},
		{SubmissionVerified, SubmissionPending, false},
		{"draft", SubmissionPending, false},
		{SubmissionPending, "approved", false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidSubmissionStatus(t *testing.T) {
	for _, status := range []string{SubmissionPending, SubmissionCompleted, SubmissionVerified} {
		if !ValidSubmissionStatus(status) {
			t.Errorf("ValidSubmissionStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", "done", "PENDING"} {
		if ValidSubmissionStatus(status) {
			t.Errorf("ValidSubmissionStatus(%q) = true", status)
		}
	}
}
