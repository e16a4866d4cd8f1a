package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cordialhq/cordial/discord"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadCommandManifest(t *testing.T) {
	path := writeManifest(t, `commands:
  - name: ping
    description: Check responsiveness
  - name: echo
    description: Repeat a message
    options:
      - type: string
        name: message
        description: Text to repeat
        required: true
        choices:
          - name: Greeting
            value: hello
`)

	cmds, err := loadCommandManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Name != "ping" || cmds[0].Type != discord.CommandTypeChatInput {
		t.Fatalf("unexpected first command: %+v", cmds[0])
	}

	echo := cmds[1]
	if len(echo.Options) != 1 {
		t.Fatalf("expected 1 option on echo, got %d", len(echo.Options))
	}
	opt := echo.Options[0]
	if opt.Type != discord.CommandOptionString {
		t.Fatalf("expected string option, got %d", opt.Type)
	}
	if !opt.Required {
		t.Fatal("expected option to be required")
	}
	if len(opt.Choices) != 1 || opt.Choices[0].Value != "hello" {
		t.Fatalf("unexpected choices: %+v", opt.Choices)
	}
}

func TestLoadCommandManifestRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
	}{
		{"no commands", "commands: []\n"},
		{"missing name", "commands:\n  - description: something\n"},
		{"missing description", "commands:\n  - name: ping\n"},
		{"unknown option type", `commands:
  - name: echo
    description: Repeat a message
    options:
      - type: text
        name: message
        description: Text to repeat
`},
	}

	for _, tc := range cases {
		path := writeManifest(t, tc.manifest)
		if _, err := loadCommandManifest(path); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	if _, err := loadCommandManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOptionTypeFromName(t *testing.T) {
	known := map[string]discord.CommandOptionType{
		"sub_command":       discord.CommandOptionSubCommand,
		"sub_command_group": discord.CommandOptionSubCommandGroup,
		"string":            discord.CommandOptionString,
		"integer":           discord.CommandOptionInteger,
		"boolean":           discord.CommandOptionBoolean,
		"user":              discord.CommandOptionUser,
		"channel":           discord.CommandOptionChannel,
		"role":              discord.CommandOptionRole,
		"mentionable":       discord.CommandOptionMentionable,
		"number":            discord.CommandOptionNumber,
		"attachment":        discord.CommandOptionAttachment,
	}
	for name, want := range known {
		got, err := optionTypeFromName(name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("expected %d for %q, got %d", want, name, got)
		}
	}

	for _, name := range []string{"", "text", "String"} {
		if _, err := optionTypeFromName(name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}
