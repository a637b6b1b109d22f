package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/modot/pkg/commands"
	"github.com/arthur-debert/modot/pkg/config"
	"github.com/arthur-debert/modot/pkg/paths"
)

// openSession resolves configuration and the game paths, then opens the
// settings session every mod command operates on.
func openSession() (*commands.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if gamePath != "" {
		cfg.Game.Path = gamePath
	}
	p, err := paths.New(cfg)
	if err != nil {
		return nil, err
	}
	session, err := commands.Open(commands.OpenOptions{
		SettingsPath: p.SettingsFile(),
		ModsDir:      p.ModsDir(),
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrOpenSession, err)
	}
	return session, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: MsgListShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		result, err := commands.List(commands.ListOptions{Session: session})
		if err != nil {
			return err
		}
		renderList(cmd.OutOrStdout(), result)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: MsgAddShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		entry, err := commands.AddMod(commands.AddModOptions{Session: session, Name: args[0]})
		if err != nil {
			return err
		}
		cmd.Printf(MsgModAdded, entry.Name, entry.Priority)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: MsgRemoveShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if _, err := commands.DeleteMod(commands.DeleteModOptions{Session: session, Name: args[0]}); err != nil {
			return err
		}
		cmd.Printf(MsgModRemoved, args[0])
		return nil
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable NAME...",
	Short: MsgEnableShort,
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEnabled(cmd, args, true) },
}

var disableCmd = &cobra.Command{
	Use:   "disable NAME...",
	Short: MsgDisableShort,
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEnabled(cmd, args, false) },
}

func setEnabled(cmd *cobra.Command, names []string, enabled bool) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := commands.SetEnabled(commands.SetEnabledOptions{Session: session, Name: name, Enabled: enabled}); err != nil {
			return err
		}
		if enabled {
			cmd.Printf(MsgModEnabled, name)
		} else {
			cmd.Printf(MsgModDisabled, name)
		}
	}
	return nil
}

var enableAllCmd = &cobra.Command{
	Use:   "enable-all",
	Short: MsgEnableAllShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.SetAllEnabled(commands.SetAllEnabledOptions{Session: session, Enabled: true}); err != nil {
			return err
		}
		cmd.Println(MsgAllEnabled)
		return nil
	},
}

var disableAllCmd = &cobra.Command{
	Use:   "disable-all",
	Short: MsgDisableAllShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.SetAllEnabled(commands.SetAllEnabledOptions{Session: session, Enabled: false}); err != nil {
			return err
		}
		cmd.Println(MsgAllDisabled)
		return nil
	},
}

var globalCmd = &cobra.Command{
	Use:       "global on|off",
	Short:     MsgGlobalShort,
	ValidArgs: []string{"on", "off"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		flag := args[0] == "on"
		if err := commands.SetGlobalDisable(commands.SetGlobalDisableOptions{Session: session, Flag: flag}); err != nil {
			return err
		}
		cmd.Printf(MsgGlobalSet, flag)
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder NAME...",
	Short: MsgReorderShort,
	Long: `Reorder assigns load-order priorities 0..N-1 matching the order of the
given names. The list must contain every registered mod exactly once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.Reorder(commands.ReorderOptions{Session: session, OrderedNames: args}); err != nil {
			return err
		}
		cmd.Printf(MsgReordered, len(args))
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install ARCHIVE...",
	Short: MsgInstallShort,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		// Archives are processed one at a time in arrival order; a failed
		// archive fails that item only.
		var firstErr error
		for _, archivePath := range args {
			report, err := commands.InstallModFromArchive(commands.InstallOptions{
				Session:     session,
				ArchivePath: archivePath,
			})
			if err != nil {
				cmd.PrintErrf("%s: %v\n", archivePath, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			cmd.Printf("%s:\n", archivePath)
			renderReport(cmd, report)
		}
		return firstErr
	},
}

var (
	resolveReplace bool
	resolveKeep    bool
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveReplace, "replace", false, "Replace the installed mod with the staged content")
	resolveCmd.Flags().BoolVar(&resolveKeep, "keep", false, "Keep the installed mod and discard the staged content")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME STAGING_PATH",
	Short: MsgResolveShort,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveReplace == resolveKeep {
			return fmt.Errorf("specify exactly one of --replace or --keep")
		}
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.ResolveConflict(commands.ResolveConflictOptions{
			Session:     session,
			Name:        args[0],
			StagingPath: args[1],
			Replace:     resolveReplace,
		}); err != nil {
			return err
		}
		decision := "kept installed version"
		if resolveReplace {
			decision = "replaced"
		}
		cmd.Printf(MsgResolved, args[0], decision)
		return nil
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize STAGING_PATH NAME",
	Short: MsgFinalizeShort,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.FinalizeModInstallation(commands.FinalizeOptions{
			Session:     session,
			StagingPath: args[0],
			Name:        args[1],
		}); err != nil {
			return err
		}
		cmd.Printf(MsgFinalized, args[1])
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup PATH",
	Short: MsgCleanupShort,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		if err := commands.CleanupTempFolder(commands.CleanupOptions{Session: session, Path: args[0]}); err != nil {
			return err
		}
		cmd.Printf(MsgCleanedUp, args[0])
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: MsgPathShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf(MsgErrLoadConfig, err)
		}
		if gamePath != "" {
			cfg.Game.Path = gamePath
		}
		path, err := commands.GetGamePath(cfg)
		if err != nil {
			return err
		}
		cmd.Println(path)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: MsgOpenShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		return commands.OpenModsFolder(session)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: MsgResetShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf(MsgErrLoadConfig, err)
		}
		if gamePath != "" {
			cfg.Game.Path = gamePath
		}
		p, err := paths.New(cfg)
		if err != nil {
			return err
		}
		found, err := commands.DeleteSettingsFile(commands.DeleteSettingsFileOptions{SettingsPath: p.SettingsFile()})
		if err != nil {
			return err
		}
		if found {
			cmd.Println(MsgSettingsDeleted)
		} else {
			cmd.Println(MsgSettingsMissing)
		}
		return nil
	},
}
