package uniswapv2

// Contract bytecodes are in bytecode_generated.go
// Run scripts/generate-bytecode.sh to regenerate from Solidity sources.
//
// WETH9Bytecode    - Wrapped ETH contract (canonical WETH9)
// FactoryBytecode  - UniswapV2Factory, constructor takes the fee setter
// Router02Bytecode - UniswapV2Router02, constructor takes factory and WETH9
