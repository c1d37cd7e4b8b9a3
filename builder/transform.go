package builder

import (
	"fmt"
	"sort"

	"github.com/D-Naveenz/rheo-storage/definitions"
	"github.com/D-Naveenz/rheo-storage/mimeclean"
	"github.com/D-Naveenz/rheo-storage/trid"
)

// logEntry is one line destined for a bucket log file.
type logEntry struct {
	fileType string
	mimeType string
	reason   string
}

// transformResult is the Transform stage's output: the Definitions
// that survived both the MIME cleanse and the extension-level filter,
// plus the rejected buckets for logging.
type transformResult struct {
	valid                      []*definitions.Definition
	invalidMimeTypes           []logEntry
	filteredInvalidDefinitions []logEntry
}

// transform runs the MIME cleanse, extension-level filter, and
// priority-level sort described in spec §4.3.
func transform(raw []trid.TrIDDefinition, allow *mimeclean.AllowList) transformResult {
	var result transformResult
	var mimeCleansed []*definitions.Definition

	for _, td := range raw {
		canonical, ok := cleanseMime(td.MimeType, allow)
		if !ok {
			result.invalidMimeTypes = append(result.invalidMimeTypes, logEntry{
				fileType: td.FileType,
				mimeType: td.MimeType,
				reason:   "mime type not found in allow list",
			})
			continue
		}

		mimeCleansed = append(mimeCleansed, &definitions.Definition{
			FileType:   td.FileType,
			Extensions: td.Extensions,
			MimeType:   canonical,
			Remarks:    td.Remarks,
			Signature: definitions.Signature{
				Patterns: td.Patterns,
				Strings:  td.Strings,
			},
		})
	}

	for _, d := range mimeCleansed {
		n := len(d.Extensions)
		if n < 1 || n > 5 {
			result.filteredInvalidDefinitions = append(result.filteredInvalidDefinitions, logEntry{
				fileType: d.FileType,
				mimeType: d.MimeType,
				reason:   fmt.Sprintf("extension count %d outside allowed range [1,5]", n),
			})
			continue
		}
		d.PriorityLevel = int32(n)
		result.valid = append(result.valid, d)
	}

	sort.SliceStable(result.valid, func(i, j int) bool {
		return result.valid[i].PriorityLevel > result.valid[j].PriorityLevel
	})

	return result
}

// cleanseMime runs the §4.2 normalization pipeline and matches the
// result against allow. The original (uncleaned) string is what
// appears in the invalid-bucket log when cleansing or matching fails.
func cleanseMime(raw string, allow *mimeclean.AllowList) (canonical string, ok bool) {
	cleaned, err := mimeclean.Clean(raw)
	if err != nil {
		return "", false
	}
	return allow.Match(cleaned)
}
