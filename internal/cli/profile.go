package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

type profileParams struct {
	flagSet *pflag.FlagSet
	name    string
	bio     string
	json    bool
}

func (a *App) profileCommand() *Command {
	var params profileParams
	return &Command{
		Name:    "profile",
		Summary: "Show or edit your profile",
		Usage:   "motoctl profile [--name NAME] [--bio BIO] [--json]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("profile", pflag.ContinueOnError)
			fs.StringVar(&params.name, "name", "", "display name")
			fs.StringVar(&params.bio, "bio", "", "short bio")
			fs.BoolVar(&params.json, "json", false, "output as JSON")
			params.flagSet = fs
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			var patch service.ProfilePatch
			if params.flagSet.Changed("name") {
				patch.Name = &params.name
			}
			if params.flagSet.Changed("bio") {
				patch.Bio = &params.bio
			}

			var (
				profile domain.UserProfile
				err     error
			)
			if patch.Name != nil || patch.Bio != nil {
				profile, err = a.svc.Profile.Update(ctx, patch)
			} else {
				var me domain.User
				me, err = a.svc.Auth.CurrentUser(ctx)
				profile = me.Profile
			}
			if err != nil {
				return err
			}

			if params.json {
				return a.writeJSON(profile)
			}
			a.printf("Name: %s\n", profile.Name)
			if profile.Bio != "" {
				a.printf("Bio:  %s\n", profile.Bio)
			}
			return a.printGarage(profile.Motorcycles)
		},
	}
}

func (a *App) printGarage(bikes []domain.Motorcycle) error {
	if len(bikes) == 0 {
		a.printf("\nGarage is empty. Add a bike with 'motoctl moto add'.\n")
		return nil
	}
	a.printf("\n")
	tw := a.table()
	fmt.Fprintf(tw, "ID\tBIKE\tYEAR\tCC\n")
	for _, b := range bikes {
		fmt.Fprintf(tw, "%s\t%s %s\t%d\t%d\n", b.ID, b.Brand, b.Model, b.Year, b.EngineCC)
	}
	return tw.Flush()
}

func (a *App) motoCommand() *Command {
	var in service.MotorcycleInput
	var asJSON bool
	return &Command{
		Name:    "moto",
		Summary: "Manage the bikes in your garage",
		Subcommands: []*Command{
			{
				Name:    "add",
				Summary: "Add a bike",
				Usage:   "motoctl moto add --brand BRAND --model MODEL --cc CC [--year YEAR]",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
					fs.StringVar(&in.Brand, "brand", "", "manufacturer")
					fs.StringVar(&in.Model, "model", "", "model name")
					fs.IntVar(&in.Year, "year", 0, "model year")
					fs.IntVar(&in.EngineCC, "cc", 0, "engine displacement in cc")
					fs.BoolVar(&asJSON, "json", false, "output as JSON")
					return fs
				},
				Run: func(ctx context.Context, args []string) error {
					in.Brand = strings.TrimSpace(in.Brand)
					in.Model = strings.TrimSpace(in.Model)
					if in.Brand == "" || in.Model == "" {
						return fmt.Errorf("--brand and --model are required")
					}
					if in.EngineCC <= 0 {
						return fmt.Errorf("--cc must be a positive displacement")
					}
					m, err := a.svc.Profile.AddMotorcycle(ctx, in)
					if err != nil {
						return err
					}
					if asJSON {
						return a.writeJSON(m)
					}
					a.printf("Added %s %s (%dcc) as %s.\n", m.Brand, m.Model, m.EngineCC, m.ID)
					return nil
				},
			},
			{
				Name:    "rm",
				Summary: "Remove a bike",
				Usage:   "motoctl moto rm <moto-id>",
				Run: func(ctx context.Context, args []string) error {
					if err := exactArgs(args, 1, "motoctl moto rm <moto-id>"); err != nil {
						return err
					}
					if err := a.svc.Profile.RemoveMotorcycle(ctx, domain.MotorcycleID(args[0])); err != nil {
						return err
					}
					a.printf("Removed %s.\n", args[0])
					return nil
				},
			},
		},
	}
}
