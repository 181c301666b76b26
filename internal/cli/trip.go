package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

type tripParams struct {
	flagSet       *pflag.FlagSet
	title         string
	description   string
	startingPoint string
	start         string
	engine        string
	visibility    string
	group         string
	json          bool
}

func (p *tripParams) flags(name, defaultEngine, defaultVisibility string) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		fs.StringVar(&p.title, "title", "", "trip title")
		fs.StringVar(&p.description, "description", "", "route notes")
		fs.StringVar(&p.startingPoint, "from", "", "meeting point")
		fs.StringVar(&p.start, "start", "", "start time, RFC 3339 or YYYY-MM-DD HH:MM (UTC)")
		fs.StringVar(&p.engine, "engine", defaultEngine, "engine rule: open, small or big")
		fs.StringVar(&p.visibility, "visibility", defaultVisibility, "public or private")
		fs.StringVar(&p.group, "group", "", "id of the group this trip belongs to")
		fs.BoolVar(&p.json, "json", false, "output as JSON")
		p.flagSet = fs
		return fs
	}
}

func (a *App) tripCommand() *Command {
	return &Command{
		Name:    "trip",
		Summary: "Plan, browse and join trips",
		Subcommands: []*Command{
			a.tripCreateCommand(),
			a.tripUpdateCommand(),
			a.tripIDCommand("delete", "Delete a trip you own", a.svc.Trips.Delete, "Deleted trip %s.\n"),
			a.tripIDCommand("join", "Join a trip", a.svc.Trips.Join, "Joined trip %s.\n"),
			a.tripIDCommand("leave", "Leave a trip", a.svc.Trips.Leave, "Left trip %s.\n"),
			a.tripListCommand(),
			a.tripShowCommand(),
		},
	}
}

func (a *App) tripCreateCommand() *Command {
	var params tripParams
	return &Command{
		Name:    "create",
		Summary: "Plan a new trip",
		Usage:   "motoctl trip create --title TITLE --from PLACE --start TIME [--engine open|small|big] [--visibility public|private] [--group GROUP-ID]",
		Flags:   params.flags("create", string(domain.EngineRuleOpen), string(domain.VisibilityPublic)),
		Run: func(ctx context.Context, args []string) error {
			in := service.TripInput{
				Title:         strings.TrimSpace(params.title),
				Description:   strings.TrimSpace(params.description),
				StartingPoint: strings.TrimSpace(params.startingPoint),
				GroupID:       domain.GroupID(strings.TrimSpace(params.group)),
			}
			if in.Title == "" || in.StartingPoint == "" {
				return fmt.Errorf("--title and --from are required")
			}
			if params.start == "" {
				return fmt.Errorf("--start is required")
			}
			var err error
			if in.StartDateTime, err = parseStart(params.start); err != nil {
				return err
			}
			if in.EngineRule, err = domain.ParseEngineRule(params.engine); err != nil {
				return err
			}
			if in.Visibility, err = domain.ParseVisibility(params.visibility); err != nil {
				return err
			}

			t, err := a.svc.Trips.Create(ctx, in)
			if err != nil {
				return err
			}
			if params.json {
				return a.writeJSON(t)
			}
			a.printf("Created trip %q as %s.\n", t.Title, t.ID)
			return nil
		},
	}
}

func (a *App) tripUpdateCommand() *Command {
	var params tripParams
	return &Command{
		Name:    "update",
		Summary: "Edit a trip you own",
		Usage:   "motoctl trip update <trip-id> [flags]",
		Flags:   params.flags("update", "", ""),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl trip update <trip-id> [flags]"); err != nil {
				return err
			}
			patch, err := params.patch()
			if err != nil {
				return err
			}
			t, err := a.svc.Trips.Update(ctx, domain.TripID(args[0]), patch)
			if err != nil {
				return err
			}
			if params.json {
				return a.writeJSON(t)
			}
			a.printf("Updated trip %s.\n", t.ID)
			return nil
		},
	}
}

// patch collects the flags the user actually set.
func (p *tripParams) patch() (service.TripPatch, error) {
	var patch service.TripPatch
	changed := p.flagSet.Changed
	trimmed := func(s string) *string {
		v := strings.TrimSpace(s)
		return &v
	}

	if changed("title") {
		patch.Title = trimmed(p.title)
	}
	if changed("description") {
		patch.Description = trimmed(p.description)
	}
	if changed("from") {
		patch.StartingPoint = trimmed(p.startingPoint)
	}
	if changed("start") {
		start, err := parseStart(p.start)
		if err != nil {
			return service.TripPatch{}, err
		}
		patch.StartDateTime = &start
	}
	if changed("engine") {
		rule, err := domain.ParseEngineRule(p.engine)
		if err != nil {
			return service.TripPatch{}, err
		}
		patch.EngineRule = &rule
	}
	if changed("visibility") {
		vis, err := domain.ParseVisibility(p.visibility)
		if err != nil {
			return service.TripPatch{}, err
		}
		patch.Visibility = &vis
	}
	if changed("group") {
		gid := domain.GroupID(strings.TrimSpace(p.group))
		patch.GroupID = &gid
	}
	return patch, nil
}

func (a *App) tripIDCommand(name, summary string, op func(context.Context, domain.TripID) error, done string) *Command {
	usage := fmt.Sprintf("motoctl trip %s <trip-id>", name)
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, usage); err != nil {
				return err
			}
			if err := op(ctx, domain.TripID(args[0])); err != nil {
				return err
			}
			a.printf(done, args[0])
			return nil
		},
	}
}

func (a *App) tripListCommand() *Command {
	var (
		scope  string
		engine string
		asJSON bool
	)
	return &Command{
		Name:    "list",
		Summary: "List trips you can see",
		Usage:   "motoctl trip list [--scope all|public|mine] [--engine open|small|big] [--json]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
			fs.StringVar(&scope, "scope", string(service.ScopeAll), "all, public or mine")
			fs.StringVar(&engine, "engine", "", "only trips with this engine rule")
			fs.BoolVar(&asJSON, "json", false, "output as JSON")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			var (
				filter service.TripFilter
				err    error
			)
			if filter.Scope, err = service.ParseTripScope(scope); err != nil {
				return err
			}
			if engine != "" {
				if filter.EngineRule, err = domain.ParseEngineRule(engine); err != nil {
					return err
				}
			}
			trips, err := a.svc.Browse.ListTrips(ctx, filter)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(trips)
			}
			return a.printTrips(trips)
		},
	}
}

func (a *App) upcomingCommand() *Command {
	var (
		window time.Duration
		asJSON bool
	)
	return &Command{
		Name:    "upcoming",
		Summary: "List visible trips starting soon",
		Usage:   "motoctl upcoming [--within 168h] [--json]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("upcoming", pflag.ContinueOnError)
			fs.DurationVar(&window, "within", service.DefaultUpcomingWindow, "how far ahead to look")
			fs.BoolVar(&asJSON, "json", false, "output as JSON")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			trips, err := a.svc.Browse.Upcoming(ctx, window)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(trips)
			}
			if len(trips) == 0 {
				a.printf("No upcoming trips in the next %s.\n", window)
				return nil
			}
			return a.printTrips(trips)
		},
	}
}

func (a *App) printTrips(trips []domain.Trip) error {
	if len(trips) == 0 {
		a.printf("  (none)\n")
		return nil
	}
	tw := a.table()
	fmt.Fprintf(tw, "ID\tTITLE\tSTART\tENGINE\tVISIBILITY\tRIDERS\n")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			t.ID, t.Title, t.StartDateTime.Format(timeLayout), domain.EngineRuleLabel(t.EngineRule), t.Visibility, len(t.ParticipantIDs))
	}
	return tw.Flush()
}

func (a *App) tripShowCommand() *Command {
	var asJSON bool
	return &Command{
		Name:    "show",
		Summary: "Show a trip with its riders",
		Usage:   "motoctl trip show <trip-id> [--json]",
		Flags:   jsonFlag("show", &asJSON),
		Run: func(ctx context.Context, args []string) error {
			if err := exactArgs(args, 1, "motoctl trip show <trip-id>"); err != nil {
				return err
			}
			d, err := a.svc.Browse.TripDetail(ctx, domain.TripID(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(newTripDetailView(d))
			}

			status := "past"
			if d.Upcoming {
				status = "upcoming"
			}
			owner, group := "unknown", "none"
			if d.Owner != nil {
				owner = d.Owner.Profile.Name
			}
			if d.Group != nil {
				group = d.Group.Name
			}

			tw := a.table()
			fmt.Fprintf(tw, "Title:\t%s\n", d.Trip.Title)
			fmt.Fprintf(tw, "Start:\t%s (%s)\n", d.Trip.StartDateTime.Format(timeLayout), status)
			fmt.Fprintf(tw, "From:\t%s\n", d.Trip.StartingPoint)
			fmt.Fprintf(tw, "Engine:\t%s\n", domain.EngineRuleLabel(d.Trip.EngineRule))
			fmt.Fprintf(tw, "Visibility:\t%s\n", d.Trip.Visibility)
			fmt.Fprintf(tw, "Owner:\t%s\n", owner)
			fmt.Fprintf(tw, "Group:\t%s\n", group)
			if err := tw.Flush(); err != nil {
				return err
			}
			if d.Trip.Description != "" {
				a.printf("\n%s\n", d.Trip.Description)
			}
			if !d.Compatible {
				a.printf("\nNone of your bikes fit this trip's engine rule.\n")
			}
			if d.Joined {
				a.printf("You are riding.\n")
			}

			a.printf("\nRIDERS\n")
			tw = a.table()
			for _, p := range d.Participants {
				fmt.Fprintf(tw, "  %s\t%s\n", p.Profile.Name, p.Email)
			}
			return tw.Flush()
		},
	}
}
