package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
)

const proposalListCachePrefix = "propostas:list:"

type ProposalCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type proposalListCacheKeyInput struct {
	State      string `json:"state"`
	Department string `json:"department"`
	CompanyID  string `json:"company_id"`
}

// ProposalListCacheKey derives a stable key for one listing filter. The
// department is compared exactly, so it is only trimmed.
func ProposalListCacheKey(f proposal.Filter) string {
	in := proposalListCacheKeyInput{
		State:      string(f.State),
		Department: strings.TrimSpace(f.Department),
	}
	if f.CompanyID != uuid.Nil {
		in.CompanyID = f.CompanyID.String()
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return proposalListCachePrefix + hex.EncodeToString(sum[:])
}
