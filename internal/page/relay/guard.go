package relay

import "strings"

// relevanceKeywords decide whether a question is about the product at all.
// Anything that mentions none of these is refused without an upstream call.
var relevanceKeywords = []string{
	"zama", "fhe", "fhevm", "homomorphic", "homomorphic encryption",
	"zk", "zkp", "zero-knowledge", "zama.ai", "zama.org",
	"farcaster", "guild", "leaderboard",
}

// IsRelevant reports whether the query mentions any product keyword.
func IsRelevant(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
