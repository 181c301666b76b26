package cli

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/pkordes/moto-trip-planner/internal/domain"
)

func (a *App) resetCommand() *Command {
	return &Command{
		Name:    "reset",
		Summary: "Discard the stored data and reload the demo data",
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 0, "motoctl reset"); err != nil {
				return err
			}
			if err := a.svc.Repo.Reset(ctx); err != nil {
				return err
			}
			db, err := a.svc.Repo.Load(ctx)
			if err != nil {
				return err
			}
			a.printf("Store reset: %d users, %d groups, %d trips.\n", len(db.Users), len(db.Groups), len(db.Trips))
			return nil
		},
	}
}

type credentialParams struct {
	password string
	json     bool
}

func (p *credentialParams) flags(name string) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		fs.StringVarP(&p.password, "password", "p", "", "account password")
		fs.BoolVar(&p.json, "json", false, "output as JSON")
		return fs
	}
}

func (a *App) loginCommand() *Command {
	var params credentialParams
	return &Command{
		Name:    "login",
		Summary: "Sign in with an email",
		Usage:   "motoctl login <email> [--password PASSWORD]",
		Flags:   params.flags("login"),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl login <email>"); err != nil {
				return err
			}
			u, err := a.svc.Auth.Login(ctx, args[0], params.password)
			if err != nil {
				return err
			}
			return a.printSignedIn(u, params.json)
		},
	}
}

func (a *App) registerCommand() *Command {
	var params credentialParams
	return &Command{
		Name:    "register",
		Summary: "Create an account and sign in",
		Usage:   "motoctl register <email> --password PASSWORD",
		Flags:   params.flags("register"),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl register <email>"); err != nil {
				return err
			}
			u, err := a.svc.Auth.Register(ctx, args[0], params.password)
			if err != nil {
				return err
			}
			return a.printSignedIn(u, params.json)
		},
	}
}

func (a *App) printSignedIn(u domain.User, asJSON bool) error {
	if asJSON {
		return a.writeJSON(newUserView(u))
	}
	a.printf("Signed in as %s <%s>.\n", u.Profile.Name, u.Email)
	return nil
}

func (a *App) logoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "End the session",
		Run: func(ctx context.Context, args []string) error {
			if err := a.svc.Auth.Logout(ctx); err != nil {
				return err
			}
			a.printf("Signed out.\n")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *Command {
	var asJSON bool
	return &Command{
		Name:    "whoami",
		Summary: "Show the signed-in rider",
		Flags:   jsonFlag("whoami", &asJSON),
		Run: func(ctx context.Context, args []string) error {
			u, err := a.svc.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(newUserView(u))
			}
			mode := "strict"
			if a.svc.Auth.Lenient() {
				mode = "dev bypass"
			}
			a.printf("%s <%s> %s (auth: %s)\n", u.Profile.Name, u.Email, u.ID, mode)
			return nil
		},
	}
}

// jsonFlag returns a Flags func exposing only --json.
func jsonFlag(name string, target *bool) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		fs.BoolVar(target, "json", false, "output as JSON")
		return fs
	}
}
