package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/output"
)

var (
	commandsSyncFile   string
	commandsSyncGuild  string
	commandsSyncOutput string
)

// commandManifest is the YAML file format for commands sync.
type commandManifest struct {
	Commands []manifestCommand `yaml:"commands"`
}

type manifestCommand struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Options     []manifestOption `yaml:"options"`
}

type manifestOption struct {
	Type        string           `yaml:"type"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Required    bool             `yaml:"required"`
	Choices     []manifestChoice `yaml:"choices"`
	Options     []manifestOption `yaml:"options"`
	MinValue    *float64         `yaml:"min_value"`
	MaxValue    *float64         `yaml:"max_value"`
}

type manifestChoice struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

var commandsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace registered application commands from a manifest",
	Long: `Replace registered application commands with the set declared in a
YAML manifest. The sync is a full overwrite: commands missing from the
manifest are deleted. Targets global commands unless --guild is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(commandsSyncOutput)
		if err != nil {
			return err
		}

		cmds, err := loadCommandManifest(commandsSyncFile)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := ensureApplicationID(cmd.Context(), client, cfg); err != nil {
			return err
		}

		var synced []discord.Command
		if commandsSyncGuild != "" {
			guildID, err := parseSnowflakeArg("--guild id", commandsSyncGuild)
			if err != nil {
				return err
			}
			synced, err = client.BulkSetGuildCommands(cmd.Context(), discord.GuildID(guildID), cmds)
			if err != nil {
				return err
			}
		} else {
			synced, err = client.BulkSetGlobalCommands(cmd.Context(), cmds)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Synced %d commands\n", len(synced))
		formatter := output.NewFormatter(format)
		rendered, err := formatter.Commands(synced)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

// loadCommandManifest reads and validates a command manifest file.
func loadCommandManifest(path string) ([]discord.Command, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied manifest path
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest commandManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(manifest.Commands) == 0 {
		return nil, fmt.Errorf("manifest %s declares no commands", path)
	}

	cmds := make([]discord.Command, 0, len(manifest.Commands))
	for _, mc := range manifest.Commands {
		if mc.Name == "" {
			return nil, fmt.Errorf("manifest command missing name")
		}
		if mc.Description == "" {
			return nil, fmt.Errorf("command %q missing description", mc.Name)
		}
		opts, err := manifestOptions(mc.Name, mc.Options)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, discord.Command{
			Type:        discord.CommandTypeChatInput,
			Name:        mc.Name,
			Description: mc.Description,
			Options:     opts,
		})
	}
	return cmds, nil
}

func manifestOptions(cmdName string, in []manifestOption) ([]discord.CommandOption, error) {
	if len(in) == 0 {
		return nil, nil
	}
	opts := make([]discord.CommandOption, 0, len(in))
	for _, mo := range in {
		typ, err := optionTypeFromName(mo.Type)
		if err != nil {
			return nil, fmt.Errorf("command %q option %q: %w", cmdName, mo.Name, err)
		}
		if mo.Name == "" {
			return nil, fmt.Errorf("command %q has an option without a name", cmdName)
		}
		nested, err := manifestOptions(cmdName, mo.Options)
		if err != nil {
			return nil, err
		}
		opt := discord.CommandOption{
			Type:        typ,
			Name:        mo.Name,
			Description: mo.Description,
			Required:    mo.Required,
			Options:     nested,
			MinValue:    mo.MinValue,
			MaxValue:    mo.MaxValue,
		}
		for _, choice := range mo.Choices {
			opt.Choices = append(opt.Choices, discord.CommandChoice{Name: choice.Name, Value: choice.Value})
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// optionTypeFromName maps manifest type names to the wire enum.
func optionTypeFromName(name string) (discord.CommandOptionType, error) {
	switch name {
	case "sub_command":
		return discord.CommandOptionSubCommand, nil
	case "sub_command_group":
		return discord.CommandOptionSubCommandGroup, nil
	case "string":
		return discord.CommandOptionString, nil
	case "integer":
		return discord.CommandOptionInteger, nil
	case "boolean":
		return discord.CommandOptionBoolean, nil
	case "user":
		return discord.CommandOptionUser, nil
	case "channel":
		return discord.CommandOptionChannel, nil
	case "role":
		return discord.CommandOptionRole, nil
	case "mentionable":
		return discord.CommandOptionMentionable, nil
	case "number":
		return discord.CommandOptionNumber, nil
	case "attachment":
		return discord.CommandOptionAttachment, nil
	case "":
		return 0, fmt.Errorf("missing option type")
	default:
		return 0, fmt.Errorf("unknown option type %q", name)
	}
}

func init() {
	commandsSyncCmd.Flags().StringVar(&commandsSyncFile, "file", "", "Command manifest file (YAML)")
	commandsSyncCmd.Flags().StringVar(&commandsSyncGuild, "guild", "", "Sync guild commands instead of global")
	commandsSyncCmd.Flags().StringVar(&commandsSyncOutput, "output", "table", "Output format: table, json")
	_ = commandsSyncCmd.MarkFlagRequired("file")
}
