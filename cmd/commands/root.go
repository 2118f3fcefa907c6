// Package commands implements the arith command line interface.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/halorium/arith"
	"github.com/halorium/arith/config"
	"github.com/halorium/arith/logging"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var (
		expression string
		cfgPath    string
		echo       bool
	)
	rootCmd := &cobra.Command{
		Use:   "arith",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluate arithmetic expressions.

With --expression, evaluates the given expression and exits. Otherwise it
reads one expression per line from standard input, printing each result or
error and continuing until end of input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			// Changed rather than != "" so that -e '' still means the
			// empty expression, which evaluates to 0.
			if cmd.Flags().Changed("expression") {
				return evalOnce(cmd, expression, echo)
			}
			log, cleanup, err := logging.New(cfg.Logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repl(cmd, cfg, log, echo)
		},
	}
	rootCmd.Flags().StringVarP(&expression, "expression", "e", "", "evaluate one expression and exit")
	rootCmd.Flags().BoolVar(&echo, "echo", false, "print parse trees alongside results")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")

	rootCmd.AddCommand(
		NewVersionCommand(),
	)

	return rootCmd
}

// evalOnce evaluates a single expression. A parse error propagates to the
// caller so the process exits nonzero.
func evalOnce(cmd *cobra.Command, src string, echo bool) error {
	e, err := arith.Parse(src)
	if err != nil {
		return err
	}
	v := e.Eval()
	if echo {
		fmt.Fprintf(cmd.OutOrStdout(), "%v : %v\n", e, v)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

// repl reads one expression per line, printing each result and reporting
// each error, until end of input. Errors never end the loop.
func repl(cmd *cobra.Command, cfg *config.Config, log *logrus.Logger, echo bool) error {
	var cache *arith.Cache
	if cfg.Cache.Enabled {
		cache = arith.NewCache(arith.CacheConfig{
			MaxEntries: cfg.Cache.MaxEntries,
			TTL:        cfg.Cache.TTL,
		})
		defer func() {
			s := cache.Stats()
			log.WithFields(logrus.Fields{
				"hits":      s.Hits,
				"misses":    s.Misses,
				"evictions": s.Evictions,
				"entries":   s.Entries,
			}).Debug("expression cache stats")
			cache.Close()
		}()
	}

	out := cmd.OutOrStdout()
	prompt := cfg.PromptFor(username())
	sc := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, prompt)
	for sc.Scan() {
		e, err := parseLine(cache, sc.Text())
		switch {
		case err != nil:
			var ierr arith.InputError
			if errors.As(err, &ierr) {
				log.WithField("col", ierr.Pos()).Error(err)
			} else {
				log.Error(err)
			}
		case echo:
			fmt.Fprintf(out, "%v : %v\n", e, e.Eval())
		default:
			fmt.Fprintln(out, e.Eval())
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return sc.Err()
}

// parseLine parses through the cache when one is enabled.
func parseLine(cache *arith.Cache, src string) (*arith.Expr, error) {
	if cache == nil {
		return arith.Parse(src)
	}
	return cache.GetOrParse(src)
}

// username names the invoking user for the prompt.
func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if s := os.Getenv("USER"); s != "" {
		return s
	}
	return "anon"
}
