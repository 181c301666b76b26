package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/pkordes/moto-trip-planner/internal/domain"
)

// exportHeader is the CSV header row, in column order.
var exportHeader = []string{
	"trip_id", "trip_title", "starting_point", "start_date_time", "engine_rule", "visibility",
	"owner_email", "group_name", "participant_id", "participant_email", "compatible",
}

// exportRecord is the JSON shape of one export row.
type exportRecord struct {
	TripID           domain.TripID     `json:"tripId"`
	TripTitle        string            `json:"tripTitle"`
	StartingPoint    string            `json:"startingPoint"`
	StartDateTime    time.Time         `json:"startDateTime"`
	EngineRule       domain.EngineRule `json:"engineRule"`
	Visibility       domain.Visibility `json:"visibility"`
	OwnerEmail       string            `json:"ownerEmail"`
	GroupName        string            `json:"groupName"`
	ParticipantID    domain.UserID     `json:"participantId"`
	ParticipantEmail string            `json:"participantEmail"`
	Compatible       bool              `json:"compatible"`
}

func (a *App) exportCommand() *Command {
	var format string
	return &Command{
		Name:    "export",
		Summary: "Export visible trips and their riders",
		Usage:   "motoctl export [--format csv|json]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
			fs.StringVar(&format, "format", "csv", "csv or json")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid --format %q: want csv or json", format)
			}
			rows, err := a.svc.Export.Export(ctx)
			if err != nil {
				return err
			}
			if format == "json" {
				records := make([]exportRecord, 0, len(rows))
				for _, r := range rows {
					records = append(records, exportRecord(r))
				}
				return a.writeJSON(records)
			}
			return a.writeCSV(rows)
		},
	}
}

func (a *App) writeCSV(rows []domain.ExportRow) error {
	w := csv.NewWriter(a.out)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			string(r.TripID),
			r.TripTitle,
			r.StartingPoint,
			r.StartDateTime.Format(time.RFC3339),
			string(r.EngineRule),
			string(r.Visibility),
			r.OwnerEmail,
			r.GroupName,
			string(r.ParticipantID),
			r.ParticipantEmail,
			strconv.FormatBool(r.Compatible),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
