package gallery

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/orbitshare/orbit-api/internal/domain/files"
)

// GenerateID derives a short base36 key from the sorted stored filenames
// and the publish time, so the same set shared twice gets distinct keys.
func GenerateID(records []files.FileRecord, at time.Time) string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		name := r.StoredFilename
		if name == "" {
			name = r.ID
		}
		names = append(names, name)
	}
	sort.Strings(names)

	input := strings.Join(names, "|") + "|" + strconv.FormatInt(at.UnixNano(), 10)
	sum := blake2b.Sum256([]byte(input))

	id := new(big.Int).SetBytes(sum[:10]).Text(36)
	for len(id) < 12 {
		id = "0" + id
	}
	return id
}
