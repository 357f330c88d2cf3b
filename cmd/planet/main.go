// Copyright (c) 2025 The Libplanet developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xiaoxianBoy/libplanet/genesis"
	"github.com/xiaoxianBoy/libplanet/lvldb"
	"github.com/xiaoxianBoy/libplanet/metrics"
	"github.com/xiaoxianBoy/libplanet/planet"
	"github.com/xiaoxianBoy/libplanet/state"
)

var (
	version   string
	gitCommit string

	log = newLogger()
)

func newLogger() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory of the world state database",
		Value: "planet-data",
	}
	proposerFlag = cli.StringFlag{
		Name:  "proposer",
		Usage: "address of the genesis proposer",
	}
	rootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "state root to inspect",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "expose prometheus metrics on this address",
	}
)

func startMetricsServer(ctx *cli.Context) error {
	addr := ctx.GlobalString(metricsAddrFlag.Name)
	if addr == "" {
		return nil
	}
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	log.Info().Str("addr", addr).Msg("metrics server started")
	return nil
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Planet",
		Usage:     "Inspect and seed libplanet world state",
		Copyright: "2025 The Libplanet developers",
		Flags:     []cli.Flag{metricsAddrFlag},
		Before:    startMetricsServer,
		Commands: []cli.Command{
			{
				Name:   "genesis",
				Usage:  "compute and commit an empty genesis world",
				Flags:  []cli.Flag{dataDirFlag, proposerFlag},
				Action: genesisAction,
			},
			{
				Name:   "dump",
				Usage:  "list all accounts of a committed world",
				Flags:  []cli.Flag{dataDirFlag, rootFlag},
				Action: dumpAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("exited")
		os.Exit(1)
	}
}

func genesisAction(ctx *cli.Context) error {
	proposer, err := planet.ParseAddress(ctx.String(proposerFlag.Name))
	if err != nil {
		return fmt.Errorf("--proposer: %w", err)
	}

	db, err := lvldb.New(ctx.String(dataDirFlag.Name), lvldb.Options{})
	if err != nil {
		return err
	}
	defer db.Close()

	root, err := new(genesis.Builder).
		Proposer(*proposer).
		Build(state.NewStater(db))
	if err != nil {
		return err
	}
	log.Info().Stringer("root", root).Msg("genesis committed")
	fmt.Println(root)
	return nil
}

func dumpAction(ctx *cli.Context) error {
	root, err := planet.ParseBytes32(ctx.String(rootFlag.Name))
	if err != nil {
		return fmt.Errorf("--root: %w", err)
	}

	db, err := lvldb.New(ctx.String(dataDirFlag.Name), lvldb.Options{})
	if err != nil {
		return err
	}
	defer db.Close()

	stater := state.NewStater(db)
	vs, err := stater.WorldState(root).GetValidatorSet()
	if err != nil {
		return err
	}
	log.Info().Int("validators", vs.Len()).Stringer("root", root).Msg("world opened")
	for _, v := range vs.Validators {
		fmt.Printf("validator %v power %v\n", v.PublicKey, v.Power)
	}

	count := 0
	err = stater.IterateAccounts(root, func(addr planet.Address, acc *state.Account) bool {
		count++
		fmt.Printf("account %v data %d bytes, %d balances\n", addr, len(acc.Data), len(acc.Balances))
		return true
	})
	if err != nil {
		return err
	}
	log.Info().Int("accounts", count).Msg("dump done")
	return nil
}
