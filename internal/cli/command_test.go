package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/cli"
)

func TestCommand_Execute_DispatchesNested(t *testing.T) {
	var called string
	var got []string
	var verbose bool

	root := &cli.Command{
		Name: "motoctl",
		Subcommands: []*cli.Command{
			{
				Name: "trip",
				Subcommands: []*cli.Command{
					{
						Name: "join",
						Flags: func() *pflag.FlagSet {
							fs := pflag.NewFlagSet("join", pflag.ContinueOnError)
							fs.BoolVarP(&verbose, "verbose", "v", false, "")
							return fs
						},
						Run: func(_ context.Context, args []string) error {
							called = "trip join"
							got = args
							return nil
						},
					},
				},
			},
		},
	}

	err := root.Execute(context.Background(), []string{"trip", "join", "-v", "trip_1"})

	require.NoError(t, err)
	assert.Equal(t, "trip join", called)
	assert.Equal(t, []string{"trip_1"}, got)
	assert.True(t, verbose)
}

func TestCommand_Execute_UnknownCommand(t *testing.T) {
	root := &cli.Command{
		Name:        "motoctl",
		Output:      &bytes.Buffer{},
		Subcommands: []*cli.Command{{Name: "trip", Run: func(context.Context, []string) error { return nil }}},
	}

	err := root.Execute(context.Background(), []string{"trp"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "trp"`)
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &cli.Command{
		Name:   "motoctl",
		Output: &help,
		Subcommands: []*cli.Command{
			{Name: "trip", Summary: "Plan trips", Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, help.String(), "trip")
	assert.Contains(t, help.String(), "Plan trips")
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	ran := false
	root := &cli.Command{
		Name:   "motoctl",
		Output: &help,
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "motoctl export [--format csv|json]",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
					fs.String("format", "csv", "csv or json")
					return fs
				},
				Run: func(context.Context, []string) error {
					ran = true
					return nil
				},
			},
		},
	}

	err := root.Execute(context.Background(), []string{"export", "--help"})

	require.NoError(t, err)
	assert.False(t, ran)
	assert.Contains(t, help.String(), "motoctl export [--format csv|json]")
	assert.Contains(t, help.String(), "--format")
}

func TestCommand_Execute_BadFlag(t *testing.T) {
	root := &cli.Command{
		Name: "motoctl",
		Subcommands: []*cli.Command{
			{
				Name:  "upcoming",
				Flags: func() *pflag.FlagSet { return pflag.NewFlagSet("upcoming", pflag.ContinueOnError) },
				Run:   func(context.Context, []string) error { return nil },
			},
		},
	}

	err := root.Execute(context.Background(), []string{"upcoming", "--nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, err.Error(), "motoctl upcoming --help")
}
