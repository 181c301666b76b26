package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

type groupParams struct {
	flagSet     *pflag.FlagSet
	name        string
	description string
	visibility  string
	json        bool
}

func (p *groupParams) flags(name, defaultVisibility string) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		fs.StringVar(&p.name, "name", "", "group name")
		fs.StringVar(&p.description, "description", "", "what the group rides")
		fs.StringVar(&p.visibility, "visibility", defaultVisibility, "public or private")
		fs.BoolVar(&p.json, "json", false, "output as JSON")
		p.flagSet = fs
		return fs
	}
}

func (a *App) groupCommand() *Command {
	return &Command{
		Name:    "group",
		Summary: "Create, browse and join riding groups",
		Subcommands: []*Command{
			a.groupCreateCommand(),
			a.groupUpdateCommand(),
			a.groupIDCommand("delete", "Delete a group you own; its trips are kept", a.svc.Groups.Delete, "Deleted group %s.\n"),
			a.groupIDCommand("join", "Join a group", a.svc.Groups.Join, "Joined group %s.\n"),
			a.groupIDCommand("leave", "Leave a group", a.svc.Groups.Leave, "Left group %s.\n"),
			a.groupListCommand(),
			a.groupShowCommand(),
		},
	}
}

func (a *App) groupCreateCommand() *Command {
	var params groupParams
	return &Command{
		Name:    "create",
		Summary: "Create a group you own",
		Usage:   "motoctl group create --name NAME [--description TEXT] [--visibility public|private]",
		Flags:   params.flags("create", string(domain.VisibilityPublic)),
		Run: func(ctx context.Context, args []string) error {
			name := strings.TrimSpace(params.name)
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			vis, err := domain.ParseVisibility(params.visibility)
			if err != nil {
				return err
			}
			g, err := a.svc.Groups.Create(ctx, service.GroupInput{
				Name:        name,
				Description: strings.TrimSpace(params.description),
				Visibility:  vis,
			})
			if err != nil {
				return err
			}
			if params.json {
				return a.writeJSON(g)
			}
			a.printf("Created group %q as %s.\n", g.Name, g.ID)
			return nil
		},
	}
}

func (a *App) groupUpdateCommand() *Command {
	var params groupParams
	return &Command{
		Name:    "update",
		Summary: "Edit a group you own",
		Usage:   "motoctl group update <group-id> [--name NAME] [--description TEXT] [--visibility public|private]",
		Flags:   params.flags("update", ""),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl group update <group-id> [flags]"); err != nil {
				return err
			}
			var patch service.GroupPatch
			if params.flagSet.Changed("name") {
				name := strings.TrimSpace(params.name)
				patch.Name = &name
			}
			if params.flagSet.Changed("description") {
				desc := strings.TrimSpace(params.description)
				patch.Description = &desc
			}
			if params.flagSet.Changed("visibility") {
				vis, err := domain.ParseVisibility(params.visibility)
				if err != nil {
					return err
				}
				patch.Visibility = &vis
			}
			g, err := a.svc.Groups.Update(ctx, domain.GroupID(args[0]), patch)
			if err != nil {
				return err
			}
			if params.json {
				return a.writeJSON(g)
			}
			a.printf("Updated group %s.\n", g.ID)
			return nil
		},
	}
}

// groupIDCommand builds a command that takes one group id and reports done.
func (a *App) groupIDCommand(name, summary string, op func(context.Context, domain.GroupID) error, done string) *Command {
	usage := fmt.Sprintf("motoctl group %s <group-id>", name)
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, usage); err != nil {
				return err
			}
			if err := op(ctx, domain.GroupID(args[0])); err != nil {
				return err
			}
			a.printf(done, args[0])
			return nil
		},
	}
}

func (a *App) groupListCommand() *Command {
	var asJSON bool
	return &Command{
		Name:    "list",
		Summary: "List your groups and public groups to join",
		Flags:   jsonFlag("list", &asJSON),
		Run: func(ctx context.Context, args []string) error {
			list, err := a.svc.Browse.Groups(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(list)
			}
			a.printf("MY GROUPS\n")
			if err := a.printGroups(list.Mine); err != nil {
				return err
			}
			a.printf("\nPUBLIC GROUPS\n")
			return a.printGroups(list.OtherPublic)
		},
	}
}

func (a *App) printGroups(groups []domain.Group) error {
	if len(groups) == 0 {
		a.printf("  (none)\n")
		return nil
	}
	tw := a.table()
	fmt.Fprintf(tw, "ID\tNAME\tVISIBILITY\tMEMBERS\n")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", g.ID, g.Name, g.Visibility, len(g.MemberIDs))
	}
	return tw.Flush()
}

func (a *App) groupShowCommand() *Command {
	var asJSON bool
	return &Command{
		Name:    "show",
		Summary: "Show a group with its members and trips",
		Usage:   "motoctl group show <group-id> [--json]",
		Flags:   jsonFlag("show", &asJSON),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl group show <group-id>"); err != nil {
				return err
			}
			d, err := a.svc.Browse.GroupDetail(ctx, domain.GroupID(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(newGroupDetailView(d))
			}

			a.printf("%s (%s)\n", d.Group.Name, d.Group.Visibility)
			if d.Group.Description != "" {
				a.printf("%s\n", d.Group.Description)
			}
			owner := "unknown"
			if d.Owner != nil {
				owner = d.Owner.Profile.Name
			}
			a.printf("Owner: %s\n", owner)
			switch {
			case d.IsOwner:
				a.printf("You own this group.\n")
			case d.IsMember:
				a.printf("You are a member.\n")
			}

			a.printf("\nMEMBERS\n")
			tw := a.table()
			for _, m := range d.Members {
				fmt.Fprintf(tw, "  %s\t%s\n", m.Profile.Name, m.Email)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			a.printf("\nTRIPS\n")
			return a.printTrips(d.Trips)
		},
	}
}
