// Package cli implements the motoctl command tree. Every command parses its
// flags, makes one service call and renders the result as a table or, with
// --json, as indented JSON. No business rules live here.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkordes/moto-trip-planner/internal/repo"
	"github.com/pkordes/moto-trip-planner/internal/service"
)

// timeLayout is how instants are printed in tables.
const timeLayout = "2006-01-02 15:04"

// Services bundles the dependencies the commands call into.
type Services struct {
	Repo    repo.DatabaseRepo
	Auth    *service.AuthService
	Profile *service.ProfileService
	Groups  *service.GroupService
	Trips   *service.TripService
	Browse  *service.BrowseService
	Export  *service.ExportService
}

// App is the motoctl command line.
type App struct {
	svc  Services
	out  io.Writer
	root *Command
}

// New builds the command tree. Results go to out; help goes to errOut.
func New(svc Services, out, errOut io.Writer) *App {
	a := &App{svc: svc, out: out}
	a.root = &Command{
		Name:    "motoctl",
		Summary: "Plan motorcycle group rides from the local trip store.",
		Output:  errOut,
		Subcommands: []*Command{
			a.resetCommand(),
			a.loginCommand(),
			a.registerCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.dashboardCommand(),
			a.profileCommand(),
			a.motoCommand(),
			a.groupCommand(),
			a.tripCommand(),
			a.upcomingCommand(),
			a.exportCommand(),
		},
	}
	return a
}

// Run executes the command line args (without the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	return a.root.Execute(ctx, args)
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 2, 0, 3, ' ', 0)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// exactArgs checks that the command got n positional args.
func exactArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// parseStart accepts RFC 3339 or a UTC "YYYY-MM-DD HH:MM" / "YYYY-MM-DDTHH:MM".
func parseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{timeLayout, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --start %q: use RFC 3339 or YYYY-MM-DD HH:MM", s)
}
