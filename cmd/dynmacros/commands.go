package dynmacros

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/dynmacros/internal/version"
	"github.com/arthur-debert/dynmacros/pkg/config"
	"github.com/arthur-debert/dynmacros/pkg/core"
	"github.com/arthur-debert/dynmacros/pkg/logging"
	"github.com/arthur-debert/dynmacros/pkg/macros"
	"github.com/arthur-debert/dynmacros/pkg/output"
	"github.com/arthur-debert/dynmacros/pkg/style"
	"github.com/arthur-debert/dynmacros/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dynmacros",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newGenerateCmd(g))
	rootCmd.AddCommand(newCleanupCmd(g))
	rootCmd.AddCommand(newResolveCmd(g))
	rootCmd.AddCommand(newSubstitutionsCmd(g))
	rootCmd.AddCommand(newFabricCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	var (
		platform           string
		configuration      string
		buildConstantsPath string
		infoPlistPath      string
		templateFilesPath  string
		format             string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reject bad input before touching the filesystem
			p, err := types.ParsePlatform(platform)
			if err != nil {
				return err
			}
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			conf, err := resolveConfiguration(p, configuration, s.Env)
			if err != nil {
				return err
			}

			result, err := core.GenerateDynamicMacros(cmd.Context(), core.GenerateOptions{
				Platform:           p.String(),
				Configuration:      conf,
				Root:               s.Root,
				Env:                s.Env,
				Config:             s.Config,
				BuildConstantsPath: absPath(buildConstantsPath),
				InfoPlistPath:      absPath(infoPlistPath),
				TemplateFilesPath:  absPath(templateFilesPath),
			})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, s.Env)
			if err != nil {
				return err
			}
			return r.Generate(outFormat, output.NewGenerateView(result))
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", MsgFlagPlatform)
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", MsgFlagConfiguration)
	cmd.Flags().StringVar(&buildConstantsPath, "build-constants-path", "", MsgFlagBuildConstantsPath)
	cmd.Flags().StringVar(&infoPlistPath, "info-plist-path", "", MsgFlagInfoPlistPath)
	cmd.Flags().StringVar(&templateFilesPath, "template-files-path", "", MsgFlagTemplateFilesPath)
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatText), MsgFlagFormat)
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func newCleanupCmd(g *globalOptions) *cobra.Command {
	var (
		platform           string
		buildConstantsPath string
		infoPlistPath      string
	)

	cmd := &cobra.Command{
		Use:     "cleanup",
		Short:   MsgCleanupShort,
		Long:    MsgCleanupLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := types.ParsePlatform(platform); err != nil {
				return err
			}
			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			if err := core.CleanupDynamicMacros(cmd.Context(), core.CleanupOptions{
				Platform:           platform,
				Root:               s.Root,
				Config:             s.Config,
				BuildConstantsPath: absPath(buildConstantsPath),
				InfoPlistPath:      absPath(infoPlistPath),
			}); err != nil {
				return err
			}

			r, err := newRenderer(cmd, s.Env)
			if err != nil {
				return err
			}
			return r.Message(fmt.Sprintf(MsgCleanupDone, platform))
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", MsgFlagPlatform)
	cmd.Flags().StringVar(&buildConstantsPath, "build-constants-path", "", MsgFlagBuildConstantsPath)
	cmd.Flags().StringVar(&infoPlistPath, "info-plist-path", "", MsgFlagInfoPlistPath)
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func newResolveCmd(g *globalOptions) *cobra.Command {
	var (
		platform      string
		configuration string
		format        string
	)

	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := types.ParsePlatform(platform)
			if err != nil {
				return err
			}
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			conf, err := resolveConfiguration(p, configuration, s.Env)
			if err != nil {
				return err
			}

			mc := macros.NewContext(p, conf, s.Root, s.Env, s.Config)
			result, err := macros.Resolve(cmd.Context(), macros.DefaultRegistry(), mc)
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, s.Env)
			if err != nil {
				return err
			}
			return r.Macros(outFormat, output.NewMacrosView(result))
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", MsgFlagPlatform)
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", MsgFlagConfiguration)
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatText), MsgFlagFormat)
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func newSubstitutionsCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "substitutions",
		Short:   MsgSubstitutionsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			table := core.GetTemplateSubstitutions(nil, s.Config, s.Root)

			r, err := newRenderer(cmd, s.Env)
			if err != nil {
				return err
			}
			return r.Substitutions(outFormat, output.NewSubstitutionsView(table))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatText), MsgFlagFormat)
	return cmd
}

func newFabricCmd(g *globalOptions) *cobra.Command {
	var fabricPath string

	cmd := &cobra.Command{
		Use:     "ios-run-fabric",
		Short:   MsgFabricShort,
		Long:    MsgFabricLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			return core.RunFabric(cmd.Context(), core.FabricOptions{
				Root:       s.Root,
				Config:     s.Config,
				FabricPath: absPath(fabricPath),
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&fabricPath, "fabric-path", "", MsgFlagFabricPath)
	return cmd
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}
			s, err := loadSession(cmd, g)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(s.Config.Raw())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "dynmacros "+version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newRenderer(cmd *cobra.Command, env types.Env) (*output.Renderer, error) {
	w := cmd.OutOrStdout()
	return output.NewRenderer(w, style.NoColor(w, env))
}
