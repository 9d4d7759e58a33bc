package chain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Deterministic(t *testing.T) {
	d := NewAddressDeriver("VWASo1ana1111111111111111111111111111111111")
	wallet := "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"
	assetID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	mint1, account1 := d.Derive(wallet, assetID)
	mint2, account2 := d.Derive(wallet, assetID)

	assert.Equal(t, mint1, mint2)
	assert.Equal(t, account1, account2)
	assert.NotEqual(t, mint1, account1)
	assert.NotEmpty(t, mint1)
}

func TestDerive_DistinctInputsDistinctAddresses(t *testing.T) {
	d := NewAddressDeriver("VWASo1ana1111111111111111111111111111111111")
	wallet := "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"

	mintA, _ := d.Derive(wallet, uuid.New())
	mintB, _ := d.Derive(wallet, uuid.New())
	assert.NotEqual(t, mintA, mintB)

	mintC, _ := d.Derive("other-wallet-address-with-enough-length", uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	mintD, _ := d.Derive(wallet, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.NotEqual(t, mintC, mintD)
}

func TestDerive_ProgramIDSeparatesDeployments(t *testing.T) {
	wallet := "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"
	assetID := uuid.New()

	mintMain, _ := NewAddressDeriver("program-main").Derive(wallet, assetID)
	mintTest, _ := NewAddressDeriver("program-test").Derive(wallet, assetID)
	assert.NotEqual(t, mintMain, mintTest)
}

func TestTokenLedger(t *testing.T) {
	ledger := NewTokenLedger("VWA Token", "VWA", 1000, map[string]uint64{
		"addr-a": 600,
		"addr-b": 400,
	})

	assert.Equal(t, "VWA Token", ledger.Name())
	assert.Equal(t, "VWA", ledger.Symbol())
	assert.Equal(t, uint64(1000), ledger.TotalSupply())
	assert.Equal(t, uint64(600), ledger.BalanceOf("addr-a"))
	assert.Equal(t, uint64(0), ledger.BalanceOf("unknown"))
}

func TestTokenLedger_CopiesBalances(t *testing.T) {
	balances := map[string]uint64{"addr-a": 100}
	ledger := NewTokenLedger("VWA Token", "VWA", 100, balances)

	balances["addr-a"] = 999
	assert.Equal(t, uint64(100), ledger.BalanceOf("addr-a"))
}

func TestExampleLedger(t *testing.T) {
	ledger := ExampleLedger()
	require.Equal(t, uint64(1_000_000), ledger.TotalSupply())
	assert.Equal(t, ledger.TotalSupply(), ledger.BalanceOf("VWADep1oyer11111111111111111111111111111111"))
}
