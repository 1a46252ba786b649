package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/users"
)

// UsersOptions holds flags shared by the users subcommands.
type UsersOptions struct {
	*RootOptions
	Latency time.Duration
}

// NewUsersCommand creates the users command group. The directory is
// in-memory and starts from the two seeded users on every invocation.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UsersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Work with the in-memory user directory",
		Long: `List, create, update and delete users in the demo directory.

The directory is seeded with two users and lives only for the duration of
the command. Users are referenced by id or by 1-based list position.

Exit codes:
  0 - Success
  1 - User not found or invalid input
  2 - Command error`,
	}

	cmd.PersistentFlags().DurationVar(&opts.Latency, "latency", rootOpts.Config.UserLatency, "simulated latency per operation")

	cmd.AddCommand(newUsersListCommand(opts))
	cmd.AddCommand(newUsersGetCommand(opts))
	cmd.AddCommand(newUsersCreateCommand(opts))
	cmd.AddCommand(newUsersUpdateCommand(opts))
	cmd.AddCommand(newUsersDeleteCommand(opts))

	return cmd
}

func (o *UsersOptions) directory() *users.Store {
	return users.NewSeededStore(users.WithLatency(o.Latency))
}

func (o *UsersOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return newFormatter(o.RootOptions, cmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newUsersListCommand(opts *UsersOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List users",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.directory().List(commandContext(cmd))
			if err != nil {
				return usersError(opts, cmd, err)
			}
			if opts.Format == "json" {
				return opts.formatter(cmd).Success(list)
			}
			for i, u := range list {
				printUser(cmd, i+1, u)
			}
			return nil
		},
	}
}

func newUsersGetCommand(opts *UsersOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <ref>",
		Short:         "Show one user",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			dir := opts.directory()
			id, err := resolveUser(ctx, dir, args[0])
			if err != nil {
				return usersError(opts, cmd, err)
			}
			u, err := dir.Get(ctx, id)
			if err != nil {
				return usersError(opts, cmd, err)
			}
			return outputUser(opts, cmd, u)
		},
	}
}

func newUsersCreateCommand(opts *UsersOptions) *cobra.Command {
	var in users.NewUser

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := opts.directory().Create(commandContext(cmd), in)
			if err != nil {
				return usersError(opts, cmd, err)
			}
			return outputUser(opts, cmd, u)
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first", "", "first name (required)")
	cmd.Flags().StringVar(&in.LastName, "last", "", "last name (required)")
	cmd.Flags().BoolVar(&in.IsDeveloper, "developer", false, "mark the user as a developer")

	return cmd
}

func newUsersUpdateCommand(opts *UsersOptions) *cobra.Command {
	var first, last string
	var developer bool

	cmd := &cobra.Command{
		Use:           "update <ref>",
		Short:         "Update the given fields of a user",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p users.Patch
			if cmd.Flags().Changed("first") {
				p.FirstName = &first
			}
			if cmd.Flags().Changed("last") {
				p.LastName = &last
			}
			if cmd.Flags().Changed("developer") {
				p.IsDeveloper = &developer
			}

			ctx := commandContext(cmd)
			dir := opts.directory()
			id, err := resolveUser(ctx, dir, args[0])
			if err != nil {
				return usersError(opts, cmd, err)
			}
			u, err := dir.Update(ctx, id, p)
			if err != nil {
				return usersError(opts, cmd, err)
			}
			return outputUser(opts, cmd, u)
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "new first name")
	cmd.Flags().StringVar(&last, "last", "", "new last name")
	cmd.Flags().BoolVar(&developer, "developer", false, "developer flag")

	return cmd
}

func newUsersDeleteCommand(opts *UsersOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <ref>",
		Short:         "Delete a user and list the remaining ones",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			dir := opts.directory()
			id, err := resolveUser(ctx, dir, args[0])
			if err != nil {
				return usersError(opts, cmd, err)
			}
			if err := dir.Delete(ctx, id); err != nil {
				return usersError(opts, cmd, err)
			}
			rest, err := dir.List(ctx)
			if err != nil {
				return usersError(opts, cmd, err)
			}
			if opts.Format == "json" {
				return opts.formatter(cmd).Success(rest)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			for i, u := range rest {
				printUser(cmd, i+1, u)
			}
			return nil
		},
	}
}

// resolveUser maps a user reference to an id: an existing id, or a 1-based
// position in the listing.
func resolveUser(ctx context.Context, dir *users.Store, ref string) (string, error) {
	if _, err := dir.Get(ctx, ref); err == nil {
		return ref, nil
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return "", err
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s", users.ErrUserNotFound, ref)
	}
	list, err := dir.List(ctx)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(list) {
		return "", fmt.Errorf("%w: %s", users.ErrUserNotFound, ref)
	}
	return list[n-1].ID, nil
}

func outputUser(opts *UsersOptions, cmd *cobra.Command, u users.User) error {
	if opts.Format == "json" {
		return opts.formatter(cmd).Success(u)
	}
	printUser(cmd, 0, u)
	return nil
}

func printUser(cmd *cobra.Command, pos int, u users.User) {
	dev := ""
	if u.IsDeveloper {
		dev = " (developer)"
	}
	if pos > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s%s  [%s]\n", pos, u.FirstName, u.LastName, dev, u.ID)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s  [%s]\n", u.FirstName, u.LastName, dev, u.ID)
}

// usersError reports a directory error and maps it to an exit code.
func usersError(opts *UsersOptions, cmd *cobra.Command, err error) error {
	code, label := ExitCommandError, "E_USERS"
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		code, label = ExitFailure, "E_NOT_FOUND"
	case errors.Is(err, users.ErrInvalidUser):
		code, label = ExitFailure, "E_INVALID"
	}
	if opts.Format == "json" {
		_ = opts.formatter(cmd).Error(label, err.Error(), nil)
	}
	return WrapExitError(code, "users", err)
}
