package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	staking "github.com/videocoin/go-stakingtodo"
)

type config struct {
	URL      string         `default:"https://testnet-rpc.monad.xyz"`
	Contract common.Address `required:"true"`
	Key      string
	Password string
	ChainID  int64 `split_words:"true"`
	Symbol   string `default:"MON"`

	WaitMined bool          `split_words:"true"`
	Timeout   time.Duration `default:"60s"`

	LogLevel  string `split_words:"true" default:"info"`
	LogFormat string `split_words:"true" default:"console"`
}

func loadConfig() (config, error) {
	var c config
	// .env is optional
	_ = godotenv.Load()
	err := envconfig.Process("stakingtodo", &c)
	return c, err
}

func newLogger(c config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if c.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type env struct {
	config config
	logger zerolog.Logger
	client *staking.Client
}

func setup() (*env, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	client, err := staking.Dial(c.URL, c.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.URL, err)
	}
	return &env{config: c, logger: newLogger(c), client: client}, nil
}

// session opens the configured keystore. The chain id is asked from the rpc unless
// configured.
func (e *env) session(ctx context.Context) (*staking.KeySession, error) {
	if e.config.Key == "" {
		return nil, fmt.Errorf("STAKINGTODO_KEY is not set")
	}
	chainID := big.NewInt(e.config.ChainID)
	if e.config.ChainID == 0 {
		id, err := e.client.ChainID(ctx)
		if err != nil {
			return nil, err
		}
		chainID = id
	}
	return staking.OpenKeystore(e.config.Key, e.config.Password, chainID)
}

func (e *env) flow() *staking.Flow {
	return staking.NewFlow(e.client).
		WithLogger(e.logger).
		WithSymbol(e.config.Symbol).
		WithWaitMined(e.config.WaitMined)
}

func main() {
	root := &cobra.Command{
		Use:          "stakingtodo",
		Short:        "Create staked todos on the staking todo list contract",
		SilenceUsage: true,
	}
	root.AddCommand(minimumStakeCmd(), createCmd(), probeCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func minimumStakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minimum-stake",
		Short: "Print the minimum stake, or the default when the contract can't be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			e, err := setup()
			if err != nil {
				return err
			}
			var session staking.WalletSession
			if e.config.Key != "" {
				s, err := e.session(ctx)
				if err != nil {
					return err
				}
				session = s
			}
			stake := e.flow().FetchMinimumStake(ctx, session)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", staking.FormatEther(stake), e.config.Symbol)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var (
		stake string
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "create <description>",
		Short: "Create a todo staking the given amount",
		Long: `
Create a todo staking the given amount. The stake defaults to the contract minimum.
The transaction is shown for approval before signing unless --yes is set.

Examples:
  stakingtodo create "water the plants"
  stakingtodo create "ship the release" --stake 0.01 --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), e.config.Timeout)
			defer cancel()

			session, err := e.session(ctx)
			if err != nil {
				return err
			}
			if !yes {
				session.WithApproval(prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), e.config.Symbol))
			}

			flow := e.flow()
			flow.SetSession(ctx, session)
			flow.SetDescription(args[0])
			if stake != "" {
				flow.SetStakeAmount(stake)
			}

			outcome, err := flow.Submit(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			if outcome.State != staking.StateSucceeded {
				return outcome.Err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stake, "stake", "", "stake amount in ether units (default: contract minimum)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "sign without asking")
	return cmd
}

func prompt(in io.Reader, out io.Writer, symbol string) staking.ApproveFunc {
	reader := bufio.NewReader(in)
	return func(tx *types.Transaction) bool {
		fmt.Fprintf(out, "Send %s %s to %s (gas %d)? [y/N] ",
			staking.FormatEther(tx.Value()), symbol, tx.To().Hex(), tx.Gas())
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check the network and the contract deployment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			e, err := setup()
			if err != nil {
				return err
			}
			result, err := e.client.Probe(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network:  %s\n", result.ChainID)
			fmt.Fprintf(out, "contract: %s\n", e.client.Address().Hex())
			fmt.Fprintf(out, "code:     %t\n", result.HasCode)
			if result.HasCode {
				fmt.Fprintf(out, "minimum:  %s wei\n", result.MinimumStake)
			}
			return nil
		},
	}
}
