package naming

import (
	"strings"
	"testing"
)

func TestValidateDomain(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "example.com", wantErr: false},
		{name: "valid trailing dot", value: "mail.example.com.", wantErr: false},
		{name: "uppercase normalized", value: "Example.Com", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "single label", value: "localhost", wantErr: true},
		{name: "underscore", value: "ex_ample.com", wantErr: true},
		{name: "double dot", value: "example..com", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDomain(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "user1", wantErr: false},
		{name: "max length", value: strings.Repeat("a", userNameMaxLength), wantErr: false},
		{name: "too long", value: strings.Repeat("a", userNameMaxLength+1), wantErr: true},
		{name: "leading digit", value: "1user", wantErr: true},
		{name: "uppercase", value: "User", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUser(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
