package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errNoPathArg is returned by set when no path is given and no terminal is
// available to ask for one.
var errNoPathArg = errors.New("set: a path argument is required when not attached to a terminal")

func (a *app) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, store.Close())
			}()

			path, ok := store.ConfigPath()
			if !ok {
				_, err = fmt.Fprintln(a.streams.Out, a.theme.muted.Render("(unset)"))
				return err
			}
			_, err = fmt.Fprintln(a.streams.Out, a.theme.value.Render(path))
			return err
		},
	}
}

func (a *app) setCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [path]",
		Short: "Store the path to a CANzero config file",
		Long: "Store the path to a CANzero config file. The path is resolved to its " +
			"canonical form and must name an existing file. Without an argument an " +
			"interactive prompt is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) == 0 && !a.interactive() {
				return errNoPathArg
			}
			if len(args) == 1 && args[0] == "" {
				return errors.New("set: path must not be empty; use clear to unset it")
			}

			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, store.Close())
			}()

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				current, _ := store.ConfigPath()
				chosen, ok, err := a.prompt(cmd.Context(), current)
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(a.streams.Out, a.theme.muted.Render("unchanged"))
					return err
				}
				path = chosen
			}

			if err := store.SetConfigPath(path); err != nil {
				return err
			}
			stored, _ := store.ConfigPath()
			_, err = fmt.Fprintf(a.streams.Out, "%s %s\n", a.theme.label.Render("config path:"), a.theme.value.Render(stored))
			return err
		},
	}
}

func (a *app) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, store.Close())
			}()

			if err := store.SetConfigPath(""); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.streams.Out, a.theme.muted.Render("config path cleared"))
			return err
		},
	}
}

func (a *app) whereCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the location of the appdata file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.location()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.streams.Out, loc.File)
			return err
		},
	}
}
