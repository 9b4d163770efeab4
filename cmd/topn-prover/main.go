// Command topn-prover runs one bounded top-N proof session end to end:
// fetch untrusted holder candidates, plan a sufficient candidate list,
// verify it against a pinned ledger state, and bind the outcome into a
// proof commitment.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chebykin/top-n-holders-go/cache"
	"github.com/chebykin/top-n-holders-go/chainspec"
	"github.com/chebykin/top-n-holders-go/config"
	"github.com/chebykin/top-n-holders-go/ledger"
	"github.com/chebykin/top-n-holders-go/plan"
	"github.com/chebykin/top-n-holders-go/receipt"
	"github.com/chebykin/top-n-holders-go/subgraph"
	"github.com/chebykin/top-n-holders-go/topn"
	"github.com/chebykin/top-n-holders-go/verify"
)

// imageTag identifies this verifier build in proof commitments until a
// packaging pipeline supplies a real image id.
const imageTag = "topn-prover/v1"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "topn-prover",
		Short:         "prove the top-N holders of an ERC20 token",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ChainSpec, "chain", cfg.ChainSpec, "chain spec name")
	flags.StringVar(&cfg.TokenContract, "token", "", "ERC20 token contract address")
	flags.StringVar(&cfg.SubgraphURL, "subgraph-url", "", "holder subgraph GraphQL endpoint")
	flags.StringVar(&cfg.RPCURL, "rpc-url", "", "EVM JSON-RPC endpoint")
	flags.Uint64Var(&cfg.BlockNumber, "block", 0, "block number to pin reads to (0 = current head)")
	flags.IntVar(&cfg.N, "n", cfg.N, "size of the ranking to prove")
	flags.StringVar(&cfg.CachePath, "cache", "", "bbolt snapshot cache path (empty = no cache)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	// Environment variables (TOPN_SUBGRAPH_URL, TOPN_RPC_URL, ...) fill
	// in any flag not given on the command line.
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		v.SetEnvPrefix("TOPN")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !f.Changed && v.IsSet(f.Name) {
				if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil && bindErr == nil {
					bindErr = err
				}
			}
		})
		return bindErr
	}

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg.LogLevel)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	registry, err := chainspec.NewRegistry()
	if err != nil {
		return err
	}
	spec, err := registry.Lookup(cfg.ChainSpec)
	if err != nil {
		return err
	}
	token := common.HexToAddress(cfg.TokenContract)

	var pinned *big.Int
	if cfg.BlockNumber > 0 {
		pinned = new(big.Int).SetUint64(cfg.BlockNumber)
	}
	reader, err := ledger.DialEthReader(ctx, cfg.RPCURL, spec, pinned)
	if err != nil {
		return err
	}
	defer reader.Close()
	block := reader.Block().Uint64()

	log.Info().
		Str("chain", spec.Name).
		Str("token", token.Hex()).
		Uint64("block", block).
		Int("n", cfg.N).
		Msg("starting proof session")

	holders, err := loadCandidates(ctx, cfg, spec, token, block, log)
	if err != nil {
		return err
	}
	if len(holders) == 0 {
		return fmt.Errorf("no holder candidates for %s", token)
	}

	supply, err := reader.TotalSupply(ctx, token)
	if err != nil {
		return err
	}
	log.Info().Str("total_supply", supply.Dec()).Msg("verified total supply")

	n := cfg.N
	if n > len(holders) {
		log.Warn().
			Int("n", n).
			Int("holders", len(holders)).
			Msg("fewer holders than requested n; clamping")
		n = len(holders)
	}

	pl := plan.Build(holders, supply, n, spec.Name, token)
	ev := log.Info().
		Int("candidates", len(pl.Input.Candidates)).
		Bool("bound_reached", pl.BoundReached)
	if pl.Threshold != nil {
		ev = ev.Str("threshold", pl.Threshold.Dec())
	}
	ev.Msg("planned candidate list")

	res, err := verify.Verify(ctx, reader, pl.Input)
	if err != nil {
		return err
	}

	journal := receipt.NewJournal(pl.Input, block, res.Output)
	jbytes, err := journal.Encode()
	if err != nil {
		return err
	}
	commitment := receipt.Bind(receipt.DeriveImageID(imageTag), jbytes)

	log.Info().
		Stringer("status", res.Status).
		Int("reads", res.Reads).
		Str("digest", hex.EncodeToString(commitment.Digest[:])).
		Msg("proof committed")

	if !res.Output.Succeeded {
		log.Warn().Stringer("status", res.Status).Msg("claim rejected; rejection proof committed")
		return nil
	}
	for i, addr := range res.Output.TopN {
		log.Info().Int("rank", i+1).Str("address", addr.Hex()).Msg("top holder")
	}
	return nil
}

// loadCandidates returns the raw holder set for the session, from the
// local snapshot cache when possible, otherwise from the subgraph.
func loadCandidates(ctx context.Context, cfg config.Config, spec chainspec.Spec, token common.Address, block uint64, log zerolog.Logger) ([]topn.Holder, error) {
	if cfg.CachePath == "" {
		fetched, err := subgraph.NewClient(cfg.SubgraphURL, log).FetchHolders(ctx, token)
		if err != nil {
			return nil, err
		}
		return fetched.Holders, nil
	}

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	entry, err := store.Get(spec.Name, token, block)
	switch {
	case err == nil:
		log.Info().Int("holders", len(entry.Holders)).Msg("using cached holder snapshot")
		return entry.HolderSet(), nil
	case errors.Is(err, cache.ErrNotFound):
	default:
		return nil, err
	}

	fetched, err := subgraph.NewClient(cfg.SubgraphURL, log).FetchHolders(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := store.Put(cache.NewEntry(spec.Name, token, block, fetched.TotalSupply, fetched.Holders)); err != nil {
		log.Warn().Err(err).Msg("could not cache holder snapshot")
	}
	return fetched.Holders, nil
}

// newLogger builds the console logger for the session.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
