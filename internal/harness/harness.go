// Package harness wires the RPC client, signing account, fee estimator,
// deployers, confirmation monitor and run history into one façade shared
// by the CLI and the MCP server.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gateway-fm/chainharness/internal/account"
	"github.com/gateway-fm/chainharness/internal/chainhead"
	"github.com/gateway-fm/chainharness/internal/config"
	"github.com/gateway-fm/chainharness/internal/contract"
	"github.com/gateway-fm/chainharness/internal/gasfee"
	"github.com/gateway-fm/chainharness/internal/metrics"
	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/internal/storage"
	"github.com/gateway-fm/chainharness/internal/token"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
	"github.com/gateway-fm/chainharness/internal/uniswapv2"
	"github.com/gateway-fm/chainharness/pkg/types"
)

// TransferGasLimit covers a plain value transfer.
const TransferGasLimit = 21_000

// Harness is the orchestration layer. All operations run against the
// single node and signing account configured at construction time.
type Harness struct {
	cfg       *config.Config
	client    rpc.Client
	owner     *account.Account
	chainID   *big.Int
	monitor   *txmonitor.Monitor
	estimator *gasfee.Estimator
	contracts *contract.Deployer
	exchange  *uniswapv2.Deployer
	store     storage.Storage
	tracker   *chainhead.Tracker
	metrics   *metrics.HarnessMetrics
	registry  *prometheus.Registry
	logger    *slog.Logger

	// Injected for deterministic tests.
	now      func() time.Time
	newRunID func() string
}

// New builds a Harness from configuration: an HTTP RPC client, the
// configured signing key (first dev account when none is given), and
// SQLite run history when a database path is set.
func New(cfg *config.Config, logger *slog.Logger) (*Harness, error) {
	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := rpc.DefaultClientConfig(cfg.RPCURL)
	clientCfg.Logger = logger
	client := rpc.NewHTTPClient(clientCfg)

	key := cfg.PrivateKey
	if key == "" {
		key = account.DevPrivateKeys[0]
	}
	owner, err := account.NewFromHex(key)
	if err != nil {
		return nil, fmt.Errorf("loading signing key: %w", err)
	}

	var store storage.Storage
	if cfg.DatabasePath != "" {
		store, err = storage.NewSQLiteStorage(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("opening run history: %w", err)
		}
	}

	return newHarness(cfg, client, owner, store, logger), nil
}

// newHarness assembles the component graph around an existing client.
// Tests use it to inject mocks.
func newHarness(cfg *config.Config, client rpc.Client, owner *account.Account, store storage.Storage, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	chainID := big.NewInt(cfg.ChainID)

	// Each harness carries its own registry so the CLI can serve exactly
	// these metrics and repeated construction never collides.
	registry := prometheus.NewRegistry()
	hm := metrics.New(registry)
	monitor := txmonitor.New(client, logger)
	monitor.SetMetrics(hm)

	estimator := gasfee.New(client, logger)
	contracts := contract.NewDeployer(client, monitor, estimator, chainID, logger)
	exchange := uniswapv2.NewDeployer(client, contracts, monitor, estimator, chainID, logger)

	h := &Harness{
		cfg:       cfg,
		client:    client,
		owner:     owner,
		chainID:   chainID,
		monitor:   monitor,
		estimator: estimator,
		contracts: contracts,
		exchange:  exchange,
		store:     store,
		metrics:   hm,
		registry:  registry,
		logger:    logger,
		now:       time.Now,
	}
	h.newRunID = func() string {
		return fmt.Sprintf("run-%d", h.now().UnixNano())
	}
	return h
}

// Start verifies the node is reachable and serving the configured chain,
// syncs the local nonce, and brings up the WebSocket head tracker when a
// WS URL is configured. Tracker startup failure is not fatal; the monitor
// falls back to polling eth_blockNumber.
func (h *Harness) Start(ctx context.Context) error {
	chainID, err := h.client.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("node unreachable: %w", err)
	}
	if chainID.Cmp(h.chainID) != 0 {
		return fmt.Errorf("chain id mismatch: node reports %s, configured %s", chainID, h.chainID)
	}

	if err := h.owner.Resync(ctx, h.client); err != nil {
		return fmt.Errorf("syncing nonce: %w", err)
	}

	if h.cfg.WSURL != "" {
		tracker := chainhead.NewTracker(h.cfg.WSURL, h.logger)
		if err := tracker.Start(ctx); err != nil {
			h.logger.Warn("head tracker unavailable, falling back to polling",
				slog.String("url", h.cfg.WSURL),
				slog.String("error", err.Error()),
			)
		} else {
			h.tracker = tracker
			h.monitor.SetHeadSource(tracker)
		}
	}

	h.logger.Info("harness ready",
		slog.String("account", h.owner.Address.Hex()),
		slog.String("chainId", h.chainID.String()),
	)
	return nil
}

// Close releases the head tracker and the run history database.
func (h *Harness) Close() error {
	if h.tracker != nil {
		h.tracker.Stop()
	}
	if h.store != nil {
		return h.store.Close()
	}
	return nil
}

// Address returns the signing account address.
func (h *Harness) Address() common.Address {
	return h.owner.Address
}

// MetricsRegistry exposes the harness metrics registry for serving.
func (h *Harness) MetricsRegistry() *prometheus.Registry {
	return h.registry
}

// options maps the configured confirmation policy onto one monitoring call.
func (h *Harness) options() txmonitor.Options {
	opts := txmonitor.DefaultOptions()
	opts.ConfirmationBlocks = h.cfg.ConfirmationBlocks
	if h.cfg.MaxTimeout > 0 {
		opts.MaxTimeout = h.cfg.MaxTimeout
	}
	if h.cfg.PollDelay > 0 {
		opts.PollDelay = h.cfg.PollDelay
	}
	return opts
}

// DeployToken deploys the mock ERC-20 and waits for confirmation.
// Redeploying with the same account and nonce state is skipped when the
// contract already exists.
func (h *Harness) DeployToken(ctx context.Context, name, symbol string) (*types.DeployedToken, error) {
	tok, err := token.Deploy(ctx, h.contracts, h.owner, name, symbol, h.client, h.options())
	if err != nil {
		return nil, fmt.Errorf("deploying token %s: %w", symbol, err)
	}
	return &types.DeployedToken{
		Address:  tok.Address.Hex(),
		Name:     tok.Name,
		Symbol:   tok.Symbol,
		Decimals: tok.Decimals,
	}, nil
}

// DeployExchange deploys WETH9, the v2 factory and the router, in that
// order, skipping contracts that already exist at their precomputed
// addresses.
func (h *Harness) DeployExchange(ctx context.Context) (*types.DeployedExchange, error) {
	deployment, err := h.exchange.DeployAll(ctx, h.owner, h.options())
	if err != nil {
		return nil, fmt.Errorf("deploying exchange: %w", err)
	}
	return &types.DeployedExchange{
		Factory: deployment.Factory.Hex(),
		WETH9:   deployment.WETH9.Hex(),
		Router:  deployment.Router.Hex(),
	}, nil
}

// CreatePair ensures the factory pair for two tokens exists and returns
// its address with the current reserves. An existing pair is reused.
func (h *Harness) CreatePair(ctx context.Context, factory, tokenA, tokenB common.Address) (*types.PairInfo, error) {
	deployment := &uniswapv2.Deployment{Factory: factory}
	pair, err := h.exchange.CreatePair(ctx, h.owner, deployment, tokenA, tokenB, h.options())
	if err != nil {
		return nil, fmt.Errorf("creating pair: %w", err)
	}
	return h.pairInfo(ctx, pair)
}

// AddLiquidity creates the pair when needed, approves the router for
// both tokens and seeds the requested reserves, then reports the pair
// state after the deposit.
func (h *Harness) AddLiquidity(ctx context.Context, factory, router, tokenA, tokenB common.Address, amountA, amountB *big.Int) (*types.PairInfo, error) {
	if amountA == nil || amountA.Sign() <= 0 || amountB == nil || amountB.Sign() <= 0 {
		return nil, fmt.Errorf("liquidity amounts must be positive")
	}

	deployment := &uniswapv2.Deployment{Factory: factory, Router: router}
	pair, err := h.exchange.CreatePair(ctx, h.owner, deployment, tokenA, tokenB, h.options())
	if err != nil {
		return nil, fmt.Errorf("creating pair: %w", err)
	}

	cfg := uniswapv2.PairConfig{TokenA: tokenA, TokenB: tokenB, AmountA: amountA, AmountB: amountB}
	if err := h.exchange.AddLiquidity(ctx, h.owner, deployment, cfg, h.options()); err != nil {
		return nil, fmt.Errorf("seeding liquidity: %w", err)
	}
	return h.pairInfo(ctx, pair)
}

func (h *Harness) pairInfo(ctx context.Context, pair common.Address) (*types.PairInfo, error) {
	reserve0, reserve1, err := h.exchange.GetReserves(ctx, pair)
	if err != nil {
		return nil, fmt.Errorf("reading reserves: %w", err)
	}
	return &types.PairInfo{
		Pair:     pair.Hex(),
		Reserve0: reserve0.String(),
		Reserve1: reserve1.String(),
	}, nil
}

// AnalyzeTrade inspects a confirmed swap transaction sent to the router
// and reports what the trade actually did.
func (h *Harness) AnalyzeTrade(ctx context.Context, router common.Address, txHash common.Hash) (*types.TradeReport, error) {
	trade, err := uniswapv2.AnalyzeTrade(ctx, h.client, &uniswapv2.Deployment{Router: router}, txHash)
	if err != nil {
		return nil, fmt.Errorf("analyzing trade %s: %w", txHash.Hex(), err)
	}

	switch t := trade.(type) {
	case *uniswapv2.TradeSuccess:
		path := make([]string, len(t.Path))
		for i, hop := range t.Path {
			path[i] = hop.Hex()
		}
		return &types.TradeReport{
			Kind:              types.TradeKindSuccess,
			GasUsed:           t.GasUsed,
			EffectiveGasPrice: t.EffectiveGasPrice,
			Path:              path,
			AmountIn:          t.AmountIn.String(),
			AmountOutMin:      t.AmountOutMin.String(),
			AmountOut:         t.AmountOut.String(),
			Price:             t.Price.FloatString(6),
		}, nil
	case *uniswapv2.TradeFail:
		return &types.TradeReport{
			Kind:              types.TradeKindFail,
			GasUsed:           t.GasUsed,
			EffectiveGasPrice: t.EffectiveGasPrice,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported trade result %T", trade)
	}
}

// TokenTransfer sends an ERC-20 transfer from the harness account and
// waits for it to confirm. A reverted transfer is an error.
func (h *Harness) TokenTransfer(ctx context.Context, tokenAddr, to common.Address, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", fmt.Errorf("transfer amount must be positive")
	}

	if err := h.owner.Resync(ctx, h.client); err != nil {
		return "", fmt.Errorf("syncing nonce: %w", err)
	}
	fees, err := h.estimator.Suggest(ctx)
	if err != nil {
		return "", fmt.Errorf("suggesting fees: %w", err)
	}

	tx, err := h.owner.SignTx(account.TxOpts{
		ChainID:   h.chainID,
		GasTipCap: fees.GasTipCap,
		GasFeeCap: fees.GasFeeCap,
		Gas:       token.TransferGasLimit,
	}, &tokenAddr, nil, token.EncodeTransfer(to, amount))
	if err != nil {
		return "", fmt.Errorf("signing token transfer: %w", err)
	}

	if _, err := h.monitor.BroadcastAndWait(ctx, []*ethtypes.Transaction{tx}, h.options()); err != nil {
		return "", err
	}
	return tx.Hash().Hex(), nil
}

// TokenBalance reads the holder's balance and the token's total supply.
// A non-nil spender adds the holder's allowance for it.
func (h *Harness) TokenBalance(ctx context.Context, tokenAddr, holder common.Address, spender *common.Address) (*types.TokenBalance, error) {
	tok := token.Bind(tokenAddr, "", "", h.client)

	balance, err := tok.BalanceOf(ctx, holder)
	if err != nil {
		return nil, err
	}
	supply, err := tok.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}

	out := &types.TokenBalance{
		Balance:     balance.String(),
		TotalSupply: supply.String(),
	}
	if spender != nil {
		allowance, err := tok.Allowance(ctx, holder, *spender)
		if err != nil {
			return nil, err
		}
		out.Allowance = allowance.String()
	}
	return out, nil
}

// SendAndConfirm signs and broadcasts count value transfers to the given
// recipient and monitors them to the configured confirmation depth. The
// run is recorded in history when a store is configured. A confirmation
// timeout still yields a report describing how far the batch got,
// alongside the error.
func (h *Harness) SendAndConfirm(ctx context.Context, count int, to common.Address, value *big.Int) (*types.ConfirmationReport, error) {
	if count <= 0 {
		return nil, fmt.Errorf("transaction count must be positive, got %d", count)
	}

	if err := h.owner.Resync(ctx, h.client); err != nil {
		return nil, fmt.Errorf("syncing nonce: %w", err)
	}
	fees, err := h.estimator.Suggest(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggesting fees: %w", err)
	}

	txs := make([]*ethtypes.Transaction, 0, count)
	for i := 0; i < count; i++ {
		tx, err := h.owner.SignTx(account.TxOpts{
			ChainID:   h.chainID,
			GasTipCap: fees.GasTipCap,
			GasFeeCap: fees.GasFeeCap,
			Gas:       TransferGasLimit,
		}, &to, value, nil)
		if err != nil {
			return nil, fmt.Errorf("signing transfer %d: %w", i, err)
		}
		txs = append(txs, tx)
	}

	run := &storage.BroadcastRun{
		ID:        h.newRunID(),
		StartedAt: h.now(),
		Submitted: count,
		Status:    types.RunStatusRunning,
	}
	h.recordRunStart(ctx, run)

	opts := h.options()
	opts.ConfirmOK = false

	started := h.now()
	receipts, err := h.monitor.BroadcastAndWait(ctx, txs, opts)
	elapsed := h.now().Sub(started)

	report := &types.ConfirmationReport{Submitted: count, Elapsed: elapsed}

	var timeoutErr *txmonitor.ConfirmationTimeoutError
	switch {
	case err == nil:
		report.Confirmed = len(receipts)
		for _, r := range receipts {
			if !r.Succeeded() {
				report.Reverted++
			}
		}
		report.Unconfirmed = count - report.Confirmed
		run.Status = types.RunStatusCompleted
		h.recordRunResult(ctx, run, report, receiptRecords(txs, receipts), "")
		return report, nil

	case errors.As(err, &timeoutErr):
		report.Unconfirmed = len(timeoutErr.Unconfirmed)
		report.Confirmed = count - report.Unconfirmed
		run.Status = types.RunStatusTimedOut
		h.recordRunResult(ctx, run, report, nil, err.Error())
		return report, err

	default:
		run.Status = types.RunStatusFailed
		h.recordRunResult(ctx, run, report, nil, err.Error())
		return nil, err
	}
}

// SuggestFees returns the current fee suggestion with amounts rendered as
// decimal wei strings.
func (h *Harness) SuggestFees(ctx context.Context) (*types.FeeSuggestion, error) {
	fees, err := h.estimator.Suggest(ctx)
	if err != nil {
		return nil, err
	}
	return &types.FeeSuggestion{
		GasTipCap: fees.GasTipCap.String(),
		GasFeeCap: fees.GasFeeCap.String(),
		BaseFee:   fees.BaseFee.String(),
		Legacy:    fees.Legacy,
	}, nil
}

// ListRuns pages through persisted run history, newest first.
func (h *Harness) ListRuns(ctx context.Context, limit, offset int) (*storage.PaginatedRuns, error) {
	if h.store == nil {
		return nil, fmt.Errorf("run history is disabled (no database configured)")
	}
	return h.store.ListRuns(ctx, limit, offset)
}

// GetRun fetches one run and its receipts.
func (h *Harness) GetRun(ctx context.Context, id string) (*storage.BroadcastRun, []storage.ReceiptRecord, error) {
	if h.store == nil {
		return nil, nil, fmt.Errorf("run history is disabled (no database configured)")
	}
	run, err := h.store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	receipts, err := h.store.GetReceipts(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, receipts, nil
}

// recordRunStart persists the run in running state. History is best
// effort; a storage failure never aborts the broadcast.
func (h *Harness) recordRunStart(ctx context.Context, run *storage.BroadcastRun) {
	if h.store == nil {
		return
	}
	if err := h.store.CreateRun(ctx, run); err != nil {
		h.logger.Warn("failed to record run start",
			slog.String("run", run.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *Harness) recordRunResult(ctx context.Context, run *storage.BroadcastRun, report *types.ConfirmationReport, receipts []storage.ReceiptRecord, errMsg string) {
	if h.store == nil {
		return
	}
	completed := h.now()
	run.CompletedAt = &completed
	run.Confirmed = report.Confirmed
	run.Reverted = report.Reverted
	run.Unconfirmed = report.Unconfirmed
	run.Error = errMsg

	if err := h.store.CompleteRun(ctx, run.ID, run); err != nil {
		h.logger.Warn("failed to record run result",
			slog.String("run", run.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if len(receipts) == 0 {
		return
	}
	if err := h.store.InsertReceipts(ctx, run.ID, receipts); err != nil {
		h.logger.Warn("failed to record receipts",
			slog.String("run", run.ID),
			slog.String("error", err.Error()),
		)
	}
}

// receiptRecords flattens the receipt map into submission order.
func receiptRecords(txs []*ethtypes.Transaction, receipts map[common.Hash]*rpc.TransactionReceipt) []storage.ReceiptRecord {
	records := make([]storage.ReceiptRecord, 0, len(receipts))
	for _, tx := range txs {
		receipt, ok := receipts[tx.Hash()]
		if !ok {
			continue
		}
		records = append(records, storage.ReceiptRecord{
			TxHash:      receipt.TxHash.Hex(),
			BlockNumber: receipt.BlockNumber,
			Status:      receipt.Status,
			GasUsed:     receipt.GasUsed,
		})
	}
	return records
}
