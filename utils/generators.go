package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// GenerateSettlementKey generates the short random token handed to the payer
// when a settlement is initiated.
func GenerateSettlementKey() string {
	result := make([]byte, SettlementKeyLength)
	max := big.NewInt(int64(len(SettlementKeyCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken
			panic(err)
		}
		result[i] = SettlementKeyCharset[n.Int64()]
	}
	return string(result)
}

// GenerateMemberKey generates a fresh per-(group,member) settlement key.
// Collision risk across members is accepted as negligible at this scale.
func GenerateMemberKey() string {
	buf := make([]byte, MemberKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
