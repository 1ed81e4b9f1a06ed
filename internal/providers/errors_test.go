package providers

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"insufficient_quota":              ErrorQuota,
		"429 too many requests":           ErrorRate,
		"invalid api key":                 ErrorAuth,
		"401 unauthorized":                ErrorAuth,
		"request timeout":                 ErrorTransient,
		"service temporarily unavailable": ErrorTransient,
		"bad request":                     ErrorPermanent,
	}
	for msg, want := range cases {
		if got := ClassifyError(errors.New(msg)); got != want {
			t.Fatalf("classify %q: got %s want %s", msg, got, want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(ErrorRate) || !Retryable(ErrorTransient) {
		t.Fatal("rate and transient errors must be retryable")
	}
	if Retryable(ErrorAuth) || Retryable(ErrorQuota) || Retryable(ErrorPermanent) {
		t.Fatal("auth, quota and permanent errors must not be retryable")
	}
}
