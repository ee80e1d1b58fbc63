// Package uniswapv2 deploys a mock Uniswap v2 style exchange and
// analyses trades executed against it.
package uniswapv2

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/chainharness/internal/account"
	"github.com/gateway-fm/chainharness/internal/contract"
	"github.com/gateway-fm/chainharness/internal/gasfee"
	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/internal/token"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
)

// CallGasLimit covers router and factory calls. createPair deploys a
// pair contract via CREATE2 and needs most of it.
const CallGasLimit = 5_000_000

// LiquidityDeadline bounds how far in the future addLiquidity deadlines
// are set.
const LiquidityDeadline = time.Hour

// Deployer deploys the exchange contracts and seeds trading pairs.
type Deployer struct {
	client    rpc.Client
	contracts *contract.Deployer
	monitor   *txmonitor.Monitor
	estimator *gasfee.Estimator
	chainID   *big.Int
	logger    *slog.Logger
}

// NewDeployer creates an exchange deployer.
func NewDeployer(client rpc.Client, contracts *contract.Deployer, monitor *txmonitor.Monitor, estimator *gasfee.Estimator, chainID *big.Int, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{
		client:    client,
		contracts: contracts,
		monitor:   monitor,
		estimator: estimator,
		chainID:   chainID,
		logger:    logger,
	}
}

// DeployAll deploys the exchange contracts in dependency order:
// WETH9 first, then the factory, then the router which takes both as
// constructor arguments. Contracts already present at their expected
// addresses are skipped.
func (d *Deployer) DeployAll(ctx context.Context, owner *account.Account, opts txmonitor.Options) (*Deployment, error) {
	deployment := &Deployment{}
	var err error

	deployment.WETH9, err = d.contracts.DeployOrSkip(ctx, owner, "WETH9", WETH9Bytecode, opts)
	if err != nil {
		return nil, fmt.Errorf("deploy WETH9: %w", err)
	}

	// Factory takes the fee setter as its only constructor argument.
	factoryBytecode := appendConstructorArgs(FactoryBytecode, owner.Address)
	deployment.Factory, err = d.contracts.DeployOrSkip(ctx, owner, "UniswapV2Factory", factoryBytecode, opts)
	if err != nil {
		return nil, fmt.Errorf("deploy factory: %w", err)
	}

	routerBytecode := appendConstructorArgs(Router02Bytecode, deployment.Factory, deployment.WETH9)
	deployment.Router, err = d.contracts.DeployOrSkip(ctx, owner, "UniswapV2Router02", routerBytecode, opts)
	if err != nil {
		return nil, fmt.Errorf("deploy router: %w", err)
	}

	d.logger.Info("Exchange deployed",
		slog.String("weth9", deployment.WETH9.Hex()),
		slog.String("factory", deployment.Factory.Hex()),
		slog.String("router", deployment.Router.Hex()),
	)
	return deployment, nil
}

// CreatePair creates the trading pair for two tokens and returns the
// pair address reported by the factory. An existing pair is reused.
func (d *Deployer) CreatePair(ctx context.Context, owner *account.Account, deployment *Deployment, tokenA, tokenB common.Address, opts txmonitor.Options) (common.Address, error) {
	pair, err := d.GetPair(ctx, deployment, tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	if pair != (common.Address{}) {
		d.logger.Info("Pair already exists, skipping creation",
			slog.String("pair", pair.Hex()),
		)
		return pair, nil
	}

	if err := d.sendCall(ctx, owner, deployment.Factory, EncodeCreatePair(tokenA, tokenB), nil, opts); err != nil {
		return common.Address{}, fmt.Errorf("create pair: %w", err)
	}

	// The pair address comes from the factory rather than a local
	// CREATE2 computation, the init code hash varies across builds.
	pair, err = d.GetPair(ctx, deployment, tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	if pair == (common.Address{}) {
		return common.Address{}, fmt.Errorf("factory returned zero address after createPair")
	}

	d.logger.Info("Pair created",
		slog.String("pair", pair.Hex()),
		slog.String("token_a", tokenA.Hex()),
		slog.String("token_b", tokenB.Hex()),
	)
	return pair, nil
}

// GetPair queries the factory for the pair address of two tokens.
// Returns the zero address when no pair exists.
func (d *Deployer) GetPair(ctx context.Context, deployment *Deployment, tokenA, tokenB common.Address) (common.Address, error) {
	result, err := d.client.CallContract(ctx, deployment.Factory.Hex(), EncodeGetPair(tokenA, tokenB))
	if err != nil {
		return common.Address{}, fmt.Errorf("query pair address: %w", err)
	}
	if len(result) < 32 {
		return common.Address{}, fmt.Errorf("short getPair response: %d bytes", len(result))
	}
	return common.BytesToAddress(result[12:32]), nil
}

// AddLiquidity approves the router for both tokens and seeds the pair
// with the configured reserves. The three transactions are confirmed as
// one batch, nonce ordering keeps the approvals ahead of the deposit.
func (d *Deployer) AddLiquidity(ctx context.Context, owner *account.Account, deployment *Deployment, config PairConfig, opts txmonitor.Options) error {
	if err := owner.Resync(ctx, d.client); err != nil {
		return fmt.Errorf("failed to resync nonce: %w", err)
	}

	fees, err := d.estimator.Suggest(ctx)
	if err != nil {
		return fmt.Errorf("failed to suggest fees: %w", err)
	}
	txOpts := account.TxOpts{
		ChainID:   d.chainID,
		GasTipCap: fees.GasTipCap,
		GasFeeCap: fees.GasFeeCap,
		Gas:       CallGasLimit,
	}

	deadline := big.NewInt(time.Now().Add(LiquidityDeadline).Unix())

	approveA, err := owner.SignTx(txOpts, &config.TokenA, nil, token.EncodeApprove(deployment.Router, MaxUint256))
	if err != nil {
		return fmt.Errorf("sign approve for token A: %w", err)
	}
	approveB, err := owner.SignTx(txOpts, &config.TokenB, nil, token.EncodeApprove(deployment.Router, MaxUint256))
	if err != nil {
		return fmt.Errorf("sign approve for token B: %w", err)
	}
	addData := EncodeAddLiquidity(config.TokenA, config.TokenB, config.AmountA, config.AmountB, owner.Address, deadline)
	add, err := owner.SignTx(txOpts, &deployment.Router, nil, addData)
	if err != nil {
		return fmt.Errorf("sign addLiquidity: %w", err)
	}

	d.logger.Info("Seeding pair liquidity",
		slog.String("token_a", config.TokenA.Hex()),
		slog.String("token_b", config.TokenB.Hex()),
		slog.String("amount_a", config.AmountA.String()),
		slog.String("amount_b", config.AmountB.String()),
	)

	if _, err := d.monitor.BroadcastAndWait(ctx, []*ethtypes.Transaction{approveA, approveB, add}, opts); err != nil {
		return fmt.Errorf("add liquidity: %w", err)
	}
	return nil
}

// GetReserves reads the raw reserves of a pair contract.
func (d *Deployer) GetReserves(ctx context.Context, pair common.Address) (reserve0, reserve1 *big.Int, err error) {
	result, err := d.client.CallContract(ctx, pair.Hex(), EncodeGetReserves())
	if err != nil {
		return nil, nil, fmt.Errorf("query reserves: %w", err)
	}
	if len(result) < 64 {
		return nil, nil, fmt.Errorf("short getReserves response: %d bytes", len(result))
	}
	return new(big.Int).SetBytes(result[0:32]), new(big.Int).SetBytes(result[32:64]), nil
}

// sendCall signs a single contract call and waits for it to confirm.
func (d *Deployer) sendCall(ctx context.Context, sender *account.Account, to common.Address, data []byte, value *big.Int, opts txmonitor.Options) error {
	if err := sender.Resync(ctx, d.client); err != nil {
		return fmt.Errorf("failed to resync nonce: %w", err)
	}

	fees, err := d.estimator.Suggest(ctx)
	if err != nil {
		return fmt.Errorf("failed to suggest fees: %w", err)
	}

	tx, err := sender.SignTx(account.TxOpts{
		ChainID:   d.chainID,
		GasTipCap: fees.GasTipCap,
		GasFeeCap: fees.GasFeeCap,
		Gas:       CallGasLimit,
	}, &to, value, data)
	if err != nil {
		return fmt.Errorf("failed to sign tx: %w", err)
	}

	_, err = d.monitor.BroadcastAndWait(ctx, []*ethtypes.Transaction{tx}, opts)
	return err
}

// appendConstructorArgs appends ABI-encoded address arguments to bytecode.
func appendConstructorArgs(bytecode []byte, args ...common.Address) []byte {
	result := make([]byte, len(bytecode)+len(args)*32)
	copy(result, bytecode)
	for i, arg := range args {
		copy(result[len(bytecode)+i*32+12:], arg.Bytes())
	}
	return result
}
