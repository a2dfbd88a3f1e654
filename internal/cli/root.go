// Package cli implements the phonebook command-line interface. Each command
// loads the Directory from storage, runs one operation on it, and saves it
// back when the operation changed something.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger
	now    func() time.Time
}

// NewRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{
		logger: zap.NewNop(),
		now:    time.Now,
	}

	root := &cobra.Command{
		Use:   "phonebook",
		Short: "A personal contact directory",
		Long: `Phonebook keeps contacts with phone numbers and birthdays, and lists
the birthdays coming up in the next week.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newAddCmd(),
		a.newDeleteCmd(),
		a.newAllCmd(),
		a.newChangeCmd(),
		a.newPhoneCmd(),
		a.newFindPhoneCmd(),
		a.newDeletePhoneCmd(),
		a.newDeletePhonesCmd(),
		a.newAddBirthdayCmd(),
		a.newShowBirthdayCmd(),
		a.newBirthdaysCmd(),
	)

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps validation and lookup failures to exitUserError and
// everything else to exitSysError.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var vErr *types.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, errPhoneNotFound) || errors.Is(err, errNoBirthday) ||
		errors.Is(err, errInvalidDate) {
		return exitUserError
	}
	return exitSysError
}

// setup loads config.yaml and builds the logger. The version command needs
// neither.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.config = cfg

	level := cfg.GetString(cfgKeyLogLevel)
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	a.logger = newLogger(level, cfg.GetString(cfgKeyLogFile))
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("command", cmd.Name()))
	return nil
}
