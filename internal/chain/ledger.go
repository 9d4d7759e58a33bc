package chain

// TokenLedger is a read-only view of the example token contract: a
// name, a symbol, a fixed total supply and a balance table. There is no
// transfer, approval or event surface; balances change only when the
// ledger is rebuilt from chain state.
type TokenLedger struct {
	name        string
	symbol      string
	totalSupply uint64
	balances    map[string]uint64
}

// NewTokenLedger builds a ledger snapshot. The balance map is copied;
// callers cannot mutate the ledger afterwards.
func NewTokenLedger(name, symbol string, totalSupply uint64, balances map[string]uint64) *TokenLedger {
	copied := make(map[string]uint64, len(balances))
	for addr, bal := range balances {
		copied[addr] = bal
	}
	return &TokenLedger{
		name:        name,
		symbol:      symbol,
		totalSupply: totalSupply,
		balances:    copied,
	}
}

// ExampleLedger is the static example ledger shipped with the project
// documentation: the full supply sits with the deployer.
func ExampleLedger() *TokenLedger {
	const deployer = "VWADep1oyer11111111111111111111111111111111"
	return NewTokenLedger("VWA Token", "VWA", 1_000_000, map[string]uint64{
		deployer: 1_000_000,
	})
}

func (l *TokenLedger) Name() string        { return l.name }
func (l *TokenLedger) Symbol() string      { return l.symbol }
func (l *TokenLedger) TotalSupply() uint64 { return l.totalSupply }

// BalanceOf returns the balance for an address, zero when unknown.
func (l *TokenLedger) BalanceOf(address string) uint64 {
	return l.balances[address]
}
