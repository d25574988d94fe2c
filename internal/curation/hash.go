package curation

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// allocHashVersion tags the seed convention below. The allocator's
// determinism is a contract: bumping this changes every allocation for
// every stored day, so it only moves with a migration.
const allocHashVersion = 1

// bucketAny is the bucket token used when ordering spans the whole
// section pool (backfill) rather than one horizon bucket.
const bucketAny = "any"

// bucketHero is the bucket token for the hero fallback pick when the
// U.S. section produced no slots.
const bucketHero = "hero"

// slotHash orders allocation candidates deterministically: 64-bit FNV-1a
// over "day|yearsForward|section|bucket|slug". Identical inputs always
// hash identically, which is what makes the offline generator
// reproducible.
func slotHash(day string, yearsForward int, section, bucket, slug string) uint64 {
	seed := strings.Join([]string{
		day, strconv.Itoa(yearsForward), section, bucket, slug,
	}, "|")
	h := fnv.New64a()
	h.Write([]byte(seed))
	return h.Sum64()
}
