package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/recipit/core"
)

// Key prefixes for different data types
const (
	recipeRecordPrefix = "recrec"
	recipeDatePrefix   = "recrecd"
	recipeTagPrefix    = "recrect"
	recipeIDSeq        = "recrecseq"
	tagRecordPrefix    = "tagrec"
	tagSlugPrefix      = "tagslug"
)

// makeRecipeKey generates a key for a recipe by ID.
func makeRecipeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", recipeRecordPrefix, id))
}

// makeRecipeDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeRecipeDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := recipeDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialRecipeDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialRecipeDateKey(timestamp time.Time) []byte {
	prefix := recipeDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeRecipeTagKey generates a composite key for the tag index.
// Format: prefix:tagID:recipeID
func makeRecipeTagKey(tagID, recipeID core.ID) []byte {
	prefix := recipeTagPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for tagID + 8 bytes for recipeID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(recipeID))
	return buf
}

// makePartialRecipeTagKey generates a partial key for tag queries.
// Format: prefix:tagID
func makePartialRecipeTagKey(tagID core.ID) []byte {
	prefix := recipeTagPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for tagID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(tagID))
	return buf
}

// makeTagKey generates a key for a tag by ID.
func makeTagKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tagRecordPrefix, id))
}

// makeTagSlugKey generates a key for tag lookup by slug.
// Format: prefix:slug
func makeTagSlugKey(slug string) []byte {
	return []byte(fmt.Sprintf("%s:%s", tagSlugPrefix, slug))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}
