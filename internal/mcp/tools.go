// Package mcp exposes the harness over MCP stdio so agents can drive a
// dev chain conversationally.
package mcp

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gateway-fm/chainharness/internal/harness"
	"github.com/gateway-fm/chainharness/pkg/types"
)

// RegisterTools registers all harness tools on the MCP server.
func RegisterTools(s *server.MCPServer, h *harness.Harness) {
	registerDeployToken(s, h)
	registerDeployExchange(s, h)
	registerCreatePair(s, h)
	registerAddLiquidity(s, h)
	registerAnalyzeTrade(s, h)
	registerTokenTransfer(s, h)
	registerTokenBalance(s, h)
	registerSendConfirm(s, h)
	registerGas(s, h)
	registerRuns(s, h)
}

// requireAddress reads a required tool argument and validates it as a
// hex address.
func requireAddress(req gomcp.CallToolRequest, key string) (common.Address, error) {
	v, err := req.RequireString(key)
	if err != nil {
		return common.Address{}, err
	}
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", key, v)
	}
	return common.HexToAddress(v), nil
}

func registerDeployToken(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_deploy_token",
		gomcp.WithDescription("Deploy a mock ERC-20 token and wait for confirmation. This is a MUTATING operation. Redeployment at the same address is skipped."),
		gomcp.WithString("name",
			gomcp.Description("Token name (default: Test Token)"),
		),
		gomcp.WithString("symbol",
			gomcp.Description("Token symbol (default: TEST)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		name := req.GetString("name", "Test Token")
		symbol := req.GetString("symbol", "TEST")

		deployed, err := h.DeployToken(ctx, name, symbol)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Token deployment failed: %v", err)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Token Deployed"),
			kv("Address", deployed.Address),
			kv("Name", deployed.Name),
			kv("Symbol", deployed.Symbol),
			kv("Decimals", deployed.Decimals),
		)), nil
	})
}

func registerDeployExchange(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_deploy_exchange",
		gomcp.WithDescription("Deploy the Uniswap-v2-style AMM (WETH9, factory, router) and wait for confirmation. This is a MUTATING operation."),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		deployed, err := h.DeployExchange(ctx)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Exchange deployment failed: %v", err)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Exchange Deployed"),
			kv("Factory", deployed.Factory),
			kv("WETH9", deployed.WETH9),
			kv("Router", deployed.Router),
		)), nil
	})
}

func registerCreatePair(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_create_pair",
		gomcp.WithDescription("Create the factory trading pair for two tokens and report its reserves. An existing pair is reused. This is a MUTATING operation."),
		gomcp.WithString("factory",
			gomcp.Required(),
			gomcp.Description("Factory contract address"),
		),
		gomcp.WithString("token_a",
			gomcp.Required(),
			gomcp.Description("First token address"),
		),
		gomcp.WithString("token_b",
			gomcp.Required(),
			gomcp.Description("Second token address"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		factory, err := requireAddress(req, "factory")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		tokenA, err := requireAddress(req, "token_a")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		tokenB, err := requireAddress(req, "token_b")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}

		pair, err := h.CreatePair(ctx, factory, tokenA, tokenB)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Pair creation failed: %v", err)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Pair Ready"),
			kv("Pair", pair.Pair),
			kv("Reserve0", formatNumber(pair.Reserve0)),
			kv("Reserve1", formatNumber(pair.Reserve1)),
		)), nil
	})
}

func registerAddLiquidity(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_add_liquidity",
		gomcp.WithDescription("Approve the router for both tokens and seed the pair with reserves, creating the pair when needed. This is a MUTATING operation."),
		gomcp.WithString("factory",
			gomcp.Required(),
			gomcp.Description("Factory contract address"),
		),
		gomcp.WithString("router",
			gomcp.Required(),
			gomcp.Description("Router contract address"),
		),
		gomcp.WithString("token_a",
			gomcp.Required(),
			gomcp.Description("First token address"),
		),
		gomcp.WithString("token_b",
			gomcp.Required(),
			gomcp.Description("Second token address"),
		),
		gomcp.WithString("amount_a",
			gomcp.Description("Deposit of token A in raw units, decimal string (default: 1000 tokens)"),
		),
		gomcp.WithString("amount_b",
			gomcp.Description("Deposit of token B in raw units, decimal string (default: 1000 tokens)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		factory, err := requireAddress(req, "factory")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		router, err := requireAddress(req, "router")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		tokenA, err := requireAddress(req, "token_a")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		tokenB, err := requireAddress(req, "token_b")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}

		defaultDeposit := "1000000000000000000000"
		amountA, ok := new(big.Int).SetString(req.GetString("amount_a", defaultDeposit), 10)
		if !ok || amountA.Sign() <= 0 {
			return gomcp.NewToolResultError("amount_a must be a positive decimal string"), nil
		}
		amountB, ok := new(big.Int).SetString(req.GetString("amount_b", defaultDeposit), 10)
		if !ok || amountB.Sign() <= 0 {
			return gomcp.NewToolResultError("amount_b must be a positive decimal string"), nil
		}

		pair, err := h.AddLiquidity(ctx, factory, router, tokenA, tokenB, amountA, amountB)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Adding liquidity failed: %v", err)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Liquidity Added"),
			kv("Pair", pair.Pair),
			kv("Reserve0", formatNumber(pair.Reserve0)),
			kv("Reserve1", formatNumber(pair.Reserve1)),
		)), nil
	})
}

func registerAnalyzeTrade(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_analyze_trade",
		gomcp.WithDescription("Inspect a confirmed swap transaction sent to the router: gas, routing path, amounts and the realized price."),
		gomcp.WithString("router",
			gomcp.Required(),
			gomcp.Description("Router contract address"),
		),
		gomcp.WithString("tx",
			gomcp.Required(),
			gomcp.Description("Swap transaction hash"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		router, err := requireAddress(req, "router")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		txHex, err := req.RequireString("tx")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		if len(common.FromHex(txHex)) != common.HashLength {
			return gomcp.NewToolResultError(fmt.Sprintf("invalid transaction hash %q", txHex)), nil
		}

		trade, err := h.AnalyzeTrade(ctx, router, common.HexToHash(txHex))
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Trade analysis failed: %v", err)), nil
		}

		if trade.Kind == types.TradeKindFail {
			return gomcp.NewToolResultText(joinLines(
				section("Trade Reverted"),
				kv("Gas Used", formatNumber(trade.GasUsed)),
				kv("Gas Price", formatWei(fmt.Sprintf("%d", trade.EffectiveGasPrice))),
			)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Trade Executed"),
			kv("Path", strings.Join(trade.Path, " -> ")),
			kv("Amount In", formatNumber(trade.AmountIn)),
			kv("Amount Out", formatNumber(trade.AmountOut)),
			kv("Min Out", formatNumber(trade.AmountOutMin)),
			kv("Price", trade.Price),
			kv("Gas Used", formatNumber(trade.GasUsed)),
			kv("Gas Price", formatWei(fmt.Sprintf("%d", trade.EffectiveGasPrice))),
		)), nil
	})
}

func registerTokenTransfer(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_token_transfer",
		gomcp.WithDescription("Send an ERC-20 transfer from the harness account and wait for confirmation. This is a MUTATING operation."),
		gomcp.WithString("token",
			gomcp.Required(),
			gomcp.Description("Token contract address"),
		),
		gomcp.WithString("to",
			gomcp.Required(),
			gomcp.Description("Recipient address"),
		),
		gomcp.WithString("amount",
			gomcp.Description("Amount in raw token units, decimal string (default: 1)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		tokenAddr, err := requireAddress(req, "token")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		to, err := requireAddress(req, "to")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}
		amount, ok := new(big.Int).SetString(req.GetString("amount", "1"), 10)
		if !ok || amount.Sign() <= 0 {
			return gomcp.NewToolResultError("amount must be a positive decimal string"), nil
		}

		txHash, err := h.TokenTransfer(ctx, tokenAddr, to, amount)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Token transfer failed: %v", err)), nil
		}
		return gomcp.NewToolResultText(joinLines(
			section("Transfer Confirmed"),
			kv("Tx", txHash),
			kv("Token", tokenAddr.Hex()),
			kv("To", to.Hex()),
			kv("Amount", formatNumber(amount.String())),
		)), nil
	})
}

func registerTokenBalance(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_token_balance",
		gomcp.WithDescription("Read an ERC-20 balance and total supply, plus the holder's allowance when a spender is given."),
		gomcp.WithString("token",
			gomcp.Required(),
			gomcp.Description("Token contract address"),
		),
		gomcp.WithString("holder",
			gomcp.Description("Holder address (default: the harness account)"),
		),
		gomcp.WithString("spender",
			gomcp.Description("Also report the holder's allowance for this spender"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		tokenAddr, err := requireAddress(req, "token")
		if err != nil {
			return gomcp.NewToolResultError(err.Error()), nil
		}

		holder := h.Address()
		if v := req.GetString("holder", ""); v != "" {
			if !common.IsHexAddress(v) {
				return gomcp.NewToolResultError(fmt.Sprintf("invalid holder address %q", v)), nil
			}
			holder = common.HexToAddress(v)
		}
		var spender *common.Address
		if v := req.GetString("spender", ""); v != "" {
			if !common.IsHexAddress(v) {
				return gomcp.NewToolResultError(fmt.Sprintf("invalid spender address %q", v)), nil
			}
			addr := common.HexToAddress(v)
			spender = &addr
		}

		balance, err := h.TokenBalance(ctx, tokenAddr, holder, spender)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Balance query failed: %v", err)), nil
		}

		lines := []string{
			section("Token Balance"),
			kv("Token", tokenAddr.Hex()),
			kv("Holder", holder.Hex()),
			kv("Balance", formatNumber(balance.Balance)),
			kv("Total Supply", formatNumber(balance.TotalSupply)),
		}
		if balance.Allowance != "" {
			lines = append(lines, kv("Allowance", formatNumber(balance.Allowance)))
		}
		return gomcp.NewToolResultText(joinLines(lines...)), nil
	})
}

func registerSendConfirm(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_send_confirm",
		gomcp.WithDescription("Broadcast value transfers and monitor them to the configured confirmation depth. This is a MUTATING operation."),
		gomcp.WithNumber("count",
			gomcp.Required(),
			gomcp.Description("Number of transfers to send (1-1000)"),
		),
		gomcp.WithString("to",
			gomcp.Description("Recipient address (default: the harness account itself)"),
		),
		gomcp.WithString("value_wei",
			gomcp.Description("Value per transfer in wei, decimal string (default: 1)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		count := req.GetInt("count", 0)
		if count <= 0 || count > 1000 {
			return gomcp.NewToolResultError("count must be between 1 and 1000"), nil
		}

		to := h.Address()
		if v := req.GetString("to", ""); v != "" {
			if !common.IsHexAddress(v) {
				return gomcp.NewToolResultError(fmt.Sprintf("invalid recipient address %q", v)), nil
			}
			to = common.HexToAddress(v)
		}

		value := big.NewInt(1)
		if v := req.GetString("value_wei", ""); v != "" {
			parsed, ok := new(big.Int).SetString(v, 10)
			if !ok || parsed.Sign() < 0 {
				return gomcp.NewToolResultError(fmt.Sprintf("invalid value_wei %q", v)), nil
			}
			value = parsed
		}

		report, err := h.SendAndConfirm(ctx, count, to, value)
		if err != nil {
			// A timeout still produced a partial report worth showing.
			if report != nil {
				return gomcp.NewToolResultText(joinLines(
					section("Confirmation Timed Out"),
					kv("Submitted", formatNumber(report.Submitted)),
					kv("Confirmed", formatNumber(report.Confirmed)),
					kv("Unconfirmed", formatNumber(report.Unconfirmed)),
					kv("Elapsed", formatElapsed(report.Elapsed)),
					"",
					fmt.Sprintf("Error: %v", err),
				)), nil
			}
			return gomcp.NewToolResultError(fmt.Sprintf("Send failed: %v", err)), nil
		}

		return gomcp.NewToolResultText(joinLines(
			section("Batch Confirmed"),
			kv("Submitted", formatNumber(report.Submitted)),
			kv("Confirmed", formatNumber(report.Confirmed)),
			kv("Reverted", formatNumber(report.Reverted)),
			kv("Elapsed", formatElapsed(report.Elapsed)),
		)), nil
	})
}

func registerGas(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_gas",
		gomcp.WithDescription("Get a gas fee suggestion from the connected node: tip cap, fee cap and base fee in wei."),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		fees, err := h.SuggestFees(ctx)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("Fee suggestion failed: %v", err)), nil
		}

		mode := "EIP-1559"
		if fees.Legacy {
			mode = "legacy (no base fee)"
		}
		return gomcp.NewToolResultText(joinLines(
			section("Gas Fees"),
			kv("Mode", mode),
			kv("Tip Cap", formatWei(fees.GasTipCap)),
			kv("Fee Cap", formatWei(fees.GasFeeCap)),
			kv("Base Fee", formatWei(fees.BaseFee)),
		)), nil
	})
}

func registerRuns(s *server.MCPServer, h *harness.Harness) {
	tool := gomcp.NewTool("harness_runs",
		gomcp.WithDescription("List broadcast run history (paginated), or show one run with its receipts when an ID is given."),
		gomcp.WithString("id",
			gomcp.Description("Run ID for detail view"),
		),
		gomcp.WithNumber("limit",
			gomcp.Description("Max results to return (default: 10)"),
		),
		gomcp.WithNumber("offset",
			gomcp.Description("Results offset for pagination (default: 0)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		if id := req.GetString("id", ""); id != "" {
			run, receipts, err := h.GetRun(ctx, id)
			if err != nil {
				return gomcp.NewToolResultError(fmt.Sprintf("Run lookup failed: %v", err)), nil
			}
			lines := []string{
				section("Run " + run.ID),
				kv("Status", string(run.Status)),
				kv("Started", run.StartedAt.Format("2006-01-02 15:04:05")),
				kv("Submitted", formatNumber(run.Submitted)),
				kv("Confirmed", formatNumber(run.Confirmed)),
				kv("Reverted", formatNumber(run.Reverted)),
				kv("Unconfirmed", formatNumber(run.Unconfirmed)),
			}
			if run.Error != "" {
				lines = append(lines, kv("Error", run.Error))
			}
			if len(receipts) > 0 {
				lines = append(lines, "", section("Receipts"))
				for _, r := range receipts {
					lines = append(lines, fmt.Sprintf("%s  block=%d status=%d gas=%s",
						r.TxHash, r.BlockNumber, r.Status, formatNumber(r.GasUsed)))
				}
			}
			return gomcp.NewToolResultText(joinLines(lines...)), nil
		}

		limit := req.GetInt("limit", 10)
		offset := req.GetInt("offset", 0)
		page, err := h.ListRuns(ctx, limit, offset)
		if err != nil {
			return gomcp.NewToolResultError(fmt.Sprintf("History failed: %v", err)), nil
		}

		if len(page.Runs) == 0 {
			return gomcp.NewToolResultText(joinLines(
				section("Run History"),
				"No runs recorded yet.",
			)), nil
		}

		lines := []string{
			section("Run History"),
			kv("Total", formatNumber(page.Total)),
			"",
		}
		for _, run := range page.Runs {
			lines = append(lines, fmt.Sprintf("%s  %s  submitted=%d confirmed=%d reverted=%d",
				run.ID, run.Status, run.Submitted, run.Confirmed, run.Reverted))
		}
		return gomcp.NewToolResultText(joinLines(lines...)), nil
	})
}
