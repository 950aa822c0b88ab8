package board

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/liip/sheriff"
	"github.com/travigo/dutyboard/pkg/config"
	"github.com/travigo/dutyboard/pkg/query"
	"github.com/urfave/cli/v2"
)

var outputFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "detailed",
		Usage: "include itineraries, presence intervals and source details",
	},
	&cli.BoolFlag{
		Name:  "raw",
		Usage: "print the result structure instead of JSON",
	},
}

var serviceFlag = &cli.StringFlag{
	Name:  "service",
	Usage: "restrict the query to one service (000 or 100)",
}

// RegisterCLI exposes the query engine on the command line. Every invocation loads the
// configured datasets afresh.
func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "query",
			Usage: "Query the duty schedule",
			Subcommands: []*cli.Command{
				{
					Name:      "duty",
					Usage:     "Look up a duty by identifier",
					ArgsUsage: "<duty>",
					Flags:     append([]cli.Flag{serviceFlag}, outputFlags...),
					Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
						result := engine.ByDuty(c.Args().First(), c.String("service"))
						return printResult(c, result.Status, result.Message, result)
					}),
				},
				{
					Name:      "run",
					Usage:     "Look up a train run by its number",
					ArgsUsage: "<train>",
					Flags:     append([]cli.Flag{serviceFlag}, outputFlags...),
					Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
						result := engine.ByRun(c.Args().First(), c.String("service"))
						return printResult(c, result.Status, result.Message, result)
					}),
				},
				{
					Name:      "cycle",
					Usage:     "List the runs of a rolling stock cycle",
					ArgsUsage: "<cycle>",
					Flags:     append([]cli.Flag{serviceFlag}, outputFlags...),
					Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
						result := engine.ByCycle(c.Args().First(), c.String("service"))
						return printResult(c, result.Status, result.Message, result)
					}),
				},
				{
					Name:      "station",
					Usage:     "List the duty events at a station within a time window",
					ArgsUsage: "<station>",
					Flags: append([]cli.Flag{
						serviceFlag,
						&cli.StringFlag{Name: "from", Usage: "window start (HH:MM)"},
						&cli.StringFlag{Name: "to", Usage: "window end (HH:MM)"},
					}, outputFlags...),
					Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
						result := engine.ByStation(c.Args().First(), c.String("from"), c.String("to"), c.String("service"))
						return printResult(c, result.Status, result.Message, result)
					}),
				},
				{
					Name:      "crew",
					Usage:     "Find the duty worked by a crew member, by payroll number or full name",
					ArgsUsage: "<payroll or name>",
					Flags: append([]cli.Flag{
						serviceFlag,
						&cli.BoolFlag{Name: "suggest", Usage: "list matching crew members instead"},
					}, outputFlags...),
					Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
						if c.Bool("suggest") {
							return printResult(c, query.StatusFound, "", engine.SuggestCrew(c.Args().First()))
						}

						result := engine.ByCrewMember(c.Args().First(), c.String("service"))
						return printResult(c, result.Status, result.Message, result)
					}),
				},
			},
		},
		{
			Name:      "phonebook",
			Usage:     "Search the phone directory",
			ArgsUsage: "<text>",
			Flags:     outputFlags,
			Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
				return printResult(c, query.StatusFound, "", engine.FilterPhonebook(c.Args().First()))
			}),
		},
		{
			Name:      "compare",
			Usage:     "Find where and when two duties overlap",
			ArgsUsage: "<duty> <duty>",
			Flags:     outputFlags,
			Action: func(c *cli.Context) error {
				board, err := openLoaded(c)
				if err != nil {
					return err
				}

				comparison, err := board.Compare(c.Args().Get(0), c.Args().Get(1))
				if err != nil {
					return err
				}

				return printResult(c, comparison.Status, comparison.Message, comparison)
			},
		},
		{
			Name:      "recognize",
			Usage:     "Read cycle and train pairs from a photo of the allocation board",
			ArgsUsage: "<image>",
			Flags:     outputFlags,
			Action: func(c *cli.Context) error {
				image, err := os.ReadFile(c.Args().First())
				if err != nil {
					return err
				}

				board, err := openLoaded(c)
				if err != nil {
					return err
				}

				if _, err := board.ApplyRecognized(c.Context, image, filepath.Base(c.Args().First())); err != nil {
					return err
				}

				return printResult(c, query.StatusFound, "", board.Assignments.Snapshot())
			},
		},
		{
			Name:  "stats",
			Usage: "Load the datasets and print what they hold",
			Flags: outputFlags,
			Action: engineAction(func(c *cli.Context, engine *query.Engine) error {
				return printResult(c, query.StatusFound, "", engine.Database().Stats())
			}),
		},
	}
}

func openLoaded(c *cli.Context) (*Board, error) {
	board, err := Open(config.Path(c.String("config")))
	if err != nil {
		return nil, err
	}

	if err := board.Load(c.Context); err != nil {
		return nil, err
	}

	return board, nil
}

func engineAction(action func(c *cli.Context, engine *query.Engine) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		board, err := openLoaded(c)
		if err != nil {
			return err
		}

		engine, err := board.Engine()
		if err != nil {
			return err
		}

		return action(c, engine)
	}
}

// printResult writes the result and turns any status but found into a non zero exit
func printResult(c *cli.Context, status query.Status, message string, value any) error {
	if c.Bool("raw") {
		pretty.Fprintf(c.App.Writer, "%# v\n", value)
	} else {
		groups := []string{"basic"}
		if c.Bool("detailed") {
			groups = append(groups, "detailed")
		}

		reduced, err := sheriff.Marshal(&sheriff.Options{Groups: groups}, value)
		if err != nil {
			return err
		}

		output, err := json.MarshalIndent(reduced, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, string(output))
	}

	if status != query.StatusFound {
		return cli.Exit(message, 1)
	}

	return nil
}
