package utils

import (
	"strings"
	"testing"
)

func TestGenerateOTPLengthAndDigits(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		otp := GenerateOTP(length)
		if len(otp) != length {
			t.Errorf("length = %d, want %d", len(otp), length)
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Errorf("non-digit %q in OTP %s", c, otp)
			}
		}
	}
}

func TestGenerateOTPDefaultsLength(t *testing.T) {
	if got := len(GenerateOTP(0)); got != 6 {
		t.Errorf("length = %d, want 6", got)
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	number := GenerateOrderNumber()
	parts := strings.Split(number, "-")
	if len(parts) != 4 || parts[0] != "ORD" {
		t.Fatalf("unexpected order number format: %s", number)
	}
	if len(parts[1]) != 8 || len(parts[2]) != 6 || len(parts[3]) != 4 {
		t.Errorf("unexpected segment lengths: %s", number)
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in       string
		fallback int
		want     int
	}{
		{"", 7, 7},
		{"abc", 7, 7},
		{"0", 7, 7},
		{"-3", 7, 7},
		{"42", 7, 42},
	}

	for _, tc := range cases {
		if got := ParseInt(tc.in, tc.fallback); got != tc.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tc.in, tc.fallback, got, tc.want)
		}
	}
}
