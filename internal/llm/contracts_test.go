package llm

import "testing"

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
		retry  bool
	}{
		{503, KindUnavailable, true},
		{429, KindRateLimited, false},
		{401, KindAuth, false},
		{403, KindAuth, false},
		{400, KindBadRequest, false},
		{404, KindBadRequest, false},
		{500, KindOther, false},
		{502, KindOther, false},
	}
	for _, tt := range tests {
		got := ClassifyStatus(tt.status, "msg")
		if got.Kind != tt.want {
			t.Fatalf("status %d: expected kind %s, got %s", tt.status, tt.want, got.Kind)
		}
		if got.Retryable() != tt.retry {
			t.Fatalf("status %d: expected retryable=%v", tt.status, tt.retry)
		}
		if got.StatusCode != tt.status || got.Message != "msg" {
			t.Fatalf("status %d: fields not carried through: %+v", tt.status, got)
		}
	}
}
