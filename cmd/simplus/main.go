// Command simplus simulates Simplus proof-of-assets rounds over a batch
// of owned outputs, reporting prove and verify timings.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"

	nummatus "github.com/quisquislabs/nummatus"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

func main() {
	app := &cli.App{
		Name:      "simplus",
		Usage:     "Quisquis proof-of-assets simulator, Simplus variant",
		ArgsUsage: "<own_list_size>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "numiter",
				Aliases: []string{"n"},
				Value:   1,
				Usage:   "number of prove/verify iterations",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected <own_list_size>")
	}
	ownListSize, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid own_list_size: %v", err)
	}
	numIter := c.Int("numiter")

	log.Info().
		Int("own_list_size", ownListSize).
		Int("numiter", numIter).
		Msg("starting Simplus simulation")

	res, err := nummatus.Simulate(nummatus.Simplus,
		ownListSize, ownListSize, numIter, rand.Reader)
	if err != nil {
		return err
	}

	fmt.Printf("Total simulation time = %v\n", res.Total)
	fmt.Printf("Average proof generation time = %v\n", res.AvgProve)
	fmt.Printf("Average proof verification time = %v\n", res.AvgVerify)
	return nil
}
