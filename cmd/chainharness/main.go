// Chain harness CLI.
// Subcommands deploy test contracts, broadcast transfer batches and query
// fee suggestions against a dev chain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gateway-fm/chainharness/internal/config"
	"github.com/gateway-fm/chainharness/internal/harness"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
	"github.com/gateway-fm/chainharness/pkg/types"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: chainharness <command> [flags]

Commands:
  deploy-token      Deploy the mock ERC-20 token
  deploy-exchange   Deploy the Uniswap-v2-style AMM (WETH9, factory, router)
  create-pair       Create (or look up) a factory trading pair
  add-liquidity     Approve the router and seed a pair with reserves
  analyze-trade     Inspect a confirmed swap transaction
  token-transfer    Send an ERC-20 transfer and wait for confirmation
  token-balance     Read an ERC-20 balance, total supply and allowance
  send              Broadcast value transfers and wait for confirmation
  gas               Print a gas fee suggestion
  runs              List broadcast run history

Run 'chainharness <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "deploy-token":
		err = runDeployToken(args)
	case "deploy-exchange":
		err = runDeployExchange(args)
	case "create-pair":
		err = runCreatePair(args)
	case "add-liquidity":
		err = runAddLiquidity(args)
	case "analyze-trade":
		err = runAnalyzeTrade(args)
	case "token-transfer":
		err = runTokenTransfer(args)
	case "token-balance":
		err = runTokenBalance(args)
	case "send":
		err = runSend(args)
	case "gas":
		err = runGas(args)
	case "runs":
		err = runRuns(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, configures logging, starts the harness and
// optionally the metrics endpoint. The returned context ends on SIGINT or
// SIGTERM.
func setup(cfg *config.Config) (*harness.Harness, context.Context, context.CancelFunc, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	h, err := harness.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if err := h.Start(ctx); err != nil {
		cancel()
		h.Close()
		return nil, nil, nil, err
	}

	if cfg.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(h.MetricsRegistry(), promhttp.HandlerOpts{}))
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		go func() {
			logger.Info("metrics listening", slog.String("addr", cfg.ListenAddr))
			if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
				logger.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	return h, ctx, cancel, nil
}

func runDeployToken(args []string) error {
	fs := flag.NewFlagSet("deploy-token", flag.ExitOnError)
	name := fs.String("name", "Test Token", "Token name")
	symbol := fs.String("symbol", "TEST", "Token symbol")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	deployed, err := h.DeployToken(ctx, *name, *symbol)
	if err != nil {
		return err
	}

	fmt.Printf("Token deployed\n")
	fmt.Printf("  address:  %s\n", deployed.Address)
	fmt.Printf("  name:     %s\n", deployed.Name)
	fmt.Printf("  symbol:   %s\n", deployed.Symbol)
	fmt.Printf("  decimals: %d\n", deployed.Decimals)
	return nil
}

func runDeployExchange(args []string) error {
	fs := flag.NewFlagSet("deploy-exchange", flag.ExitOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	deployed, err := h.DeployExchange(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Exchange deployed\n")
	fmt.Printf("  factory: %s\n", deployed.Factory)
	fmt.Printf("  weth9:   %s\n", deployed.WETH9)
	fmt.Printf("  router:  %s\n", deployed.Router)
	return nil
}

// parseAddress validates a required address flag.
func parseAddress(name, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("invalid -%s address %q", name, v)
	}
	return common.HexToAddress(v), nil
}

// parseAmount parses a decimal wei or raw-token-unit amount.
func parseAmount(name, v string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(v, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid -%s %q", name, v)
	}
	return amount, nil
}

func runCreatePair(args []string) error {
	fs := flag.NewFlagSet("create-pair", flag.ExitOnError)
	factoryHex := fs.String("factory", "", "Factory contract address")
	tokenAHex := fs.String("token-a", "", "First token address")
	tokenBHex := fs.String("token-b", "", "Second token address")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	factory, err := parseAddress("factory", *factoryHex)
	if err != nil {
		return err
	}
	tokenA, err := parseAddress("token-a", *tokenAHex)
	if err != nil {
		return err
	}
	tokenB, err := parseAddress("token-b", *tokenBHex)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	pair, err := h.CreatePair(ctx, factory, tokenA, tokenB)
	if err != nil {
		return err
	}

	fmt.Printf("Pair ready\n")
	fmt.Printf("  pair:     %s\n", pair.Pair)
	fmt.Printf("  reserve0: %s\n", pair.Reserve0)
	fmt.Printf("  reserve1: %s\n", pair.Reserve1)
	return nil
}

func runAddLiquidity(args []string) error {
	fs := flag.NewFlagSet("add-liquidity", flag.ExitOnError)
	factoryHex := fs.String("factory", "", "Factory contract address")
	routerHex := fs.String("router", "", "Router contract address")
	tokenAHex := fs.String("token-a", "", "First token address")
	tokenBHex := fs.String("token-b", "", "Second token address")
	amountAStr := fs.String("amount-a", "1000000000000000000000", "Deposit of token A in raw units")
	amountBStr := fs.String("amount-b", "1000000000000000000000", "Deposit of token B in raw units")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	factory, err := parseAddress("factory", *factoryHex)
	if err != nil {
		return err
	}
	router, err := parseAddress("router", *routerHex)
	if err != nil {
		return err
	}
	tokenA, err := parseAddress("token-a", *tokenAHex)
	if err != nil {
		return err
	}
	tokenB, err := parseAddress("token-b", *tokenBHex)
	if err != nil {
		return err
	}
	amountA, err := parseAmount("amount-a", *amountAStr)
	if err != nil {
		return err
	}
	amountB, err := parseAmount("amount-b", *amountBStr)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	pair, err := h.AddLiquidity(ctx, factory, router, tokenA, tokenB, amountA, amountB)
	if err != nil {
		return err
	}

	fmt.Printf("Liquidity added\n")
	fmt.Printf("  pair:     %s\n", pair.Pair)
	fmt.Printf("  reserve0: %s\n", pair.Reserve0)
	fmt.Printf("  reserve1: %s\n", pair.Reserve1)
	return nil
}

func runAnalyzeTrade(args []string) error {
	fs := flag.NewFlagSet("analyze-trade", flag.ExitOnError)
	routerHex := fs.String("router", "", "Router contract address")
	txHex := fs.String("tx", "", "Swap transaction hash")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	router, err := parseAddress("router", *routerHex)
	if err != nil {
		return err
	}
	if len(common.FromHex(*txHex)) != common.HashLength {
		return fmt.Errorf("invalid -tx hash %q", *txHex)
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	trade, err := h.AnalyzeTrade(ctx, router, common.HexToHash(*txHex))
	if err != nil {
		return err
	}

	fmt.Printf("Trade %s\n", trade.Kind)
	fmt.Printf("  gas used:      %d\n", trade.GasUsed)
	fmt.Printf("  gas price:     %d wei\n", trade.EffectiveGasPrice)
	if trade.Kind == types.TradeKindSuccess {
		fmt.Printf("  path:          %s\n", strings.Join(trade.Path, " -> "))
		fmt.Printf("  amount in:     %s\n", trade.AmountIn)
		fmt.Printf("  amount out:    %s (min %s)\n", trade.AmountOut, trade.AmountOutMin)
		fmt.Printf("  price:         %s\n", trade.Price)
	}
	return nil
}

func runTokenTransfer(args []string) error {
	fs := flag.NewFlagSet("token-transfer", flag.ExitOnError)
	tokenHex := fs.String("token", "", "Token contract address")
	toHex := fs.String("to", "", "Recipient address")
	amountStr := fs.String("amount", "1", "Amount in raw token units")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	tokenAddr, err := parseAddress("token", *tokenHex)
	if err != nil {
		return err
	}
	to, err := parseAddress("to", *toHex)
	if err != nil {
		return err
	}
	amount, err := parseAmount("amount", *amountStr)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	txHash, err := h.TokenTransfer(ctx, tokenAddr, to, amount)
	if err != nil {
		return err
	}

	fmt.Printf("Transfer confirmed\n")
	fmt.Printf("  tx: %s\n", txHash)
	return nil
}

func runTokenBalance(args []string) error {
	fs := flag.NewFlagSet("token-balance", flag.ExitOnError)
	tokenHex := fs.String("token", "", "Token contract address")
	holderHex := fs.String("holder", "", "Holder address (defaults to the harness account)")
	spenderHex := fs.String("spender", "", "Also report the holder's allowance for this spender")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	tokenAddr, err := parseAddress("token", *tokenHex)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	holder := h.Address()
	if *holderHex != "" {
		holder, err = parseAddress("holder", *holderHex)
		if err != nil {
			return err
		}
	}
	var spender *common.Address
	if *spenderHex != "" {
		addr, err := parseAddress("spender", *spenderHex)
		if err != nil {
			return err
		}
		spender = &addr
	}

	balance, err := h.TokenBalance(ctx, tokenAddr, holder, spender)
	if err != nil {
		return err
	}

	fmt.Printf("Token %s\n", tokenAddr.Hex())
	fmt.Printf("  holder:       %s\n", holder.Hex())
	fmt.Printf("  balance:      %s\n", balance.Balance)
	fmt.Printf("  total supply: %s\n", balance.TotalSupply)
	if balance.Allowance != "" {
		fmt.Printf("  allowance:    %s\n", balance.Allowance)
	}
	return nil
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	count := fs.Int("count", 1, "Number of transfers to send")
	to := fs.String("to", "", "Recipient address (defaults to the sender)")
	valueWei := fs.String("value", "1", "Value per transfer in wei")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	value, ok := new(big.Int).SetString(*valueWei, 10)
	if !ok || value.Sign() < 0 {
		return fmt.Errorf("invalid -value %q", *valueWei)
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	recipient := h.Address()
	if *to != "" {
		if !common.IsHexAddress(*to) {
			return fmt.Errorf("invalid -to address %q", *to)
		}
		recipient = common.HexToAddress(*to)
	}

	report, err := h.SendAndConfirm(ctx, *count, recipient, value)
	if err != nil {
		var timeoutErr *txmonitor.ConfirmationTimeoutError
		if errors.As(err, &timeoutErr) && report != nil {
			fmt.Printf("Confirmation timed out after %s\n", report.Elapsed.Round(time.Millisecond))
			fmt.Printf("  submitted:   %d\n", report.Submitted)
			fmt.Printf("  confirmed:   %d\n", report.Confirmed)
			fmt.Printf("  unconfirmed: %d\n", report.Unconfirmed)
		}
		return err
	}

	fmt.Printf("Batch confirmed in %s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Printf("  submitted: %d\n", report.Submitted)
	fmt.Printf("  confirmed: %d\n", report.Confirmed)
	fmt.Printf("  reverted:  %d\n", report.Reverted)
	return nil
}

func runGas(args []string) error {
	fs := flag.NewFlagSet("gas", flag.ExitOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	h, ctx, cancel, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer h.Close()

	fees, err := h.SuggestFees(ctx)
	if err != nil {
		return err
	}

	mode := "eip-1559"
	if fees.Legacy {
		mode = "legacy"
	}
	fmt.Printf("Gas fee suggestion (%s)\n", mode)
	fmt.Printf("  tip cap:  %s wei\n", fees.GasTipCap)
	fmt.Printf("  fee cap:  %s wei\n", fees.GasFeeCap)
	fmt.Printf("  base fee: %s wei\n", fees.BaseFee)
	return nil
}

func runRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Max runs to list")
	offset := fs.Int("offset", 0, "Pagination offset")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// History is local; no node connection needed.
	h, err := harness.New(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer h.Close()

	page, err := h.ListRuns(context.Background(), *limit, *offset)
	if err != nil {
		return err
	}

	if len(page.Runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%d runs (showing %d from offset %d)\n", page.Total, len(page.Runs), page.Offset)
	for _, run := range page.Runs {
		fmt.Printf("  %s  %s  %-10s  submitted=%d confirmed=%d reverted=%d unconfirmed=%d\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Status,
			run.Submitted, run.Confirmed, run.Reverted, run.Unconfirmed)
	}
	return nil
}
