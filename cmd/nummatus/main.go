// Command nummatus simulates Nummatus proof-of-assets rounds: it
// assembles an anonymity list, then repeatedly generates and verifies the
// batch proof, reporting the timings.
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
		Name:      "nummatus",
		Usage:     "Quisquis proof-of-assets simulator, Nummatus variant",
		ArgsUsage: "<anon_list_size> [<own_list_size>]",
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
	if c.NArg() < 1 || c.NArg() > 2 {
		return fmt.Errorf("expected <anon_list_size> [<own_list_size>]")
	}
	anonListSize, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid anon_list_size: %v", err)
	}
	ownListSize := anonListSize
	if c.NArg() == 2 {
		if ownListSize, err = strconv.Atoi(c.Args().Get(1)); err != nil {
			return fmt.Errorf("invalid own_list_size: %v", err)
		}
	}
	numIter := c.Int("numiter")

	log.Info().
		Int("anon_list_size", anonListSize).
		Int("own_list_size", ownListSize).
		Int("numiter", numIter).
		Msg("starting Nummatus simulation")

	res, err := nummatus.Simulate(nummatus.Nummatus,
		anonListSize, ownListSize, numIter, rand.Reader)
	if err != nil {
		return err
	}

	fmt.Printf("Total simulation time = %v\n", res.Total)
	fmt.Printf("Average proof generation time = %v\n", res.AvgProve)
	fmt.Printf("Average proof verification time = %v\n", res.AvgVerify)
	return nil
}
