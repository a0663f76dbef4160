package hive

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworks(t *testing.T) {
	assert := assert.New(t)

	main := Mainnet()
	assert.True(main.IsMainnet())
	assert.False(main.IsTestnet())
	assert.NotEmpty(main.Nodes)
	assert.Equal(mainnetChainID,
		hex.EncodeToString(main.ChainID[:]))

	test := Testnet()
	assert.True(test.IsTestnet())
	assert.False(test.IsMainnet())
	assert.NotEqual(main.ChainID, test.ChainID)
}
