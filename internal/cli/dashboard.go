package cli

import "context"

func (a *App) dashboardCommand() *Command {
	var asJSON bool
	return &Command{
		Name:    "dashboard",
		Summary: "Show your groups, your trips and what starts this week",
		Usage:   "motoctl dashboard [--json]",
		Flags:   jsonFlag("dashboard", &asJSON),
		Run: func(ctx context.Context, args []string) error {
			d, err := a.svc.Browse.Dashboard(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return a.writeJSON(newDashboardView(d))
			}

			a.printf("Welcome back, %s.\n\n", d.Me.Profile.Name)
			a.printf("MY GROUPS\n")
			if err := a.printGroups(d.MyGroups); err != nil {
				return err
			}
			a.printf("\nMY TRIPS\n")
			if err := a.printTrips(d.MyTrips); err != nil {
				return err
			}
			a.printf("\nUPCOMING (NEXT 7 DAYS)\n")
			return a.printTrips(d.Upcoming)
		},
	}
}
