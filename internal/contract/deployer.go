// Package contract handles contract deployment for test chains.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gateway-fm/chainharness/internal/account"
	"github.com/gateway-fm/chainharness/internal/gasfee"
	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
)

// DeployGasLimit covers every contract the harness ships, including the
// Uniswap v2 router.
const DeployGasLimit = 6_000_000

// Deployer signs, broadcasts, and confirms contract creation transactions.
type Deployer struct {
	client    rpc.Client
	monitor   *txmonitor.Monitor
	estimator *gasfee.Estimator
	chainID   *big.Int
	logger    *slog.Logger
}

// NewDeployer creates a contract deployer.
func NewDeployer(client rpc.Client, monitor *txmonitor.Monitor, estimator *gasfee.Estimator, chainID *big.Int, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{
		client:    client,
		monitor:   monitor,
		estimator: estimator,
		chainID:   chainID,
		logger:    logger,
	}
}

// Deploy creates a contract and waits for the creation to confirm.
// Constructor arguments, if any, must already be appended to the bytecode.
func (d *Deployer) Deploy(ctx context.Context, deployer *account.Account, name string, bytecode []byte, opts txmonitor.Options) (common.Address, error) {
	if err := deployer.Resync(ctx, d.client); err != nil {
		return common.Address{}, fmt.Errorf("failed to resync nonce: %w", err)
	}

	fees, err := d.estimator.Suggest(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to suggest fees: %w", err)
	}

	nonce := deployer.PeekNonce()
	expectedAddr := crypto.CreateAddress(deployer.Address, nonce)

	tx, err := deployer.SignTx(account.TxOpts{
		ChainID:   d.chainID,
		GasTipCap: fees.GasTipCap,
		GasFeeCap: fees.GasFeeCap,
		Gas:       DeployGasLimit,
	}, nil, nil, bytecode)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to sign deployment of %s: %w", name, err)
	}

	d.logger.Info("Deploying contract",
		slog.String("name", name),
		slog.String("expected_address", expectedAddr.Hex()),
	)

	receipts, err := d.monitor.BroadcastAndWait(ctx, []*ethtypes.Transaction{tx}, opts)
	if err != nil {
		return common.Address{}, fmt.Errorf("deployment of %s failed: %w", name, err)
	}

	receipt := receipts[tx.Hash()]
	if receipt == nil {
		return common.Address{}, fmt.Errorf("deployment of %s confirmed without a receipt", name)
	}
	if receipt.ContractAddress == "" {
		return common.Address{}, fmt.Errorf("deployment of %s produced no contract address", name)
	}

	addr := common.HexToAddress(receipt.ContractAddress)
	d.logger.Info("Contract deployed",
		slog.String("name", name),
		slog.String("address", addr.Hex()),
	)
	return addr, nil
}

// DeployOrSkip deploys a contract unless code already exists at the
// address the next nonce would create. Reusing the prior deployment
// keeps repeated harness runs against a persistent dev chain cheap.
func (d *Deployer) DeployOrSkip(ctx context.Context, deployer *account.Account, name string, bytecode []byte, opts txmonitor.Options) (common.Address, error) {
	if err := deployer.Resync(ctx, d.client); err != nil {
		return common.Address{}, fmt.Errorf("failed to resync nonce: %w", err)
	}

	expectedAddr := crypto.CreateAddress(deployer.Address, deployer.PeekNonce())
	exists, err := d.contractExists(ctx, expectedAddr)
	if err != nil {
		d.logger.Warn("Failed to check contract existence, will deploy",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	} else if exists {
		d.logger.Info("Contract already deployed, skipping",
			slog.String("name", name),
			slog.String("address", expectedAddr.Hex()),
		)
		return expectedAddr, nil
	}

	return d.Deploy(ctx, deployer, name, bytecode, opts)
}

// contractExists checks whether code is present at the given address.
func (d *Deployer) contractExists(ctx context.Context, addr common.Address) (bool, error) {
	code, err := d.client.GetCode(ctx, addr.Hex())
	if err != nil {
		return false, err
	}
	return code != "" && code != "0x", nil
}
