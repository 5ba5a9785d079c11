package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "bearer token",
			header: "Bearer abc.def.ghi",
			want:   "abc.def.ghi",
		},
		{
			name:   "surrounding whitespace trimmed",
			header: "Bearer  abc.def.ghi  ",
			want:   "abc.def.ghi",
		},
		{
			name:   "missing header",
			header: "",
			want:   "",
		},
		{
			name:   "basic scheme rejected",
			header: "Basic dXNlcjpwYXNz",
			want:   "",
		},
		{
			name:   "bare bearer",
			header: "Bearer",
			want:   "",
		},
		{
			name:   "bearer with only whitespace",
			header: "Bearer    ",
			want:   "",
		},
		{
			name:   "scheme is case sensitive",
			header: "bearer abc",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTokenHasNoSideEffects(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")

	ExtractToken(r)

	if got := r.Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization header mutated to %q", got)
	}
}
