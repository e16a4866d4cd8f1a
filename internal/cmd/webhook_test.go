package cmd

import (
	"testing"

	"github.com/cordialhq/cordial/discord"
)

func TestParseWebhookRef(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		id      discord.WebhookID
		token   string
		wantErr bool
	}{
		{"full url", "https://discord.com/api/webhooks/223456789012345678/secret-token", 223456789012345678, "secret-token", false},
		{"versioned url", "https://discord.com/api/v10/webhooks/223456789012345678/secret-token", 223456789012345678, "secret-token", false},
		{"bare pair", "223456789012345678/secret-token", 223456789012345678, "secret-token", false},
		{"trailing slash", "https://discord.com/api/webhooks/223456789012345678/secret-token/", 223456789012345678, "secret-token", false},
		{"missing token", "https://discord.com/api/webhooks/223456789012345678", 0, "", true},
		{"non-numeric id", "abc/secret-token", 0, "", true},
		{"empty", "", 0, "", true},
	}

	for _, tc := range cases {
		id, token, err := parseWebhookRef(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error for %q", tc.name, tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if id != tc.id {
			t.Fatalf("%s: expected id %d, got %d", tc.name, tc.id, id)
		}
		if token != tc.token {
			t.Fatalf("%s: expected token %q, got %q", tc.name, tc.token, token)
		}
	}
}
