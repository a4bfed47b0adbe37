package rag

// separators tried in order when looking for a natural chunk boundary.
var separators = []rune{'\n', '。', '！', '？', '.', '!', '?'}

// SplitText splits a long string into chunks of approximately chunkSize
// runes with an overlap to preserve context at boundaries. Chunk ends are
// nudged back to the nearest sentence separator when one falls inside the
// trailing fifth of the chunk, so sentences are cut mid-word only as a
// last resort.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else if cut := boundaryBefore(runes, i, end); cut > i {
			end = cut
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// boundaryBefore looks backwards from end for a separator inside the
// trailing fifth of the chunk and returns the index just past it, or 0
// when none is found.
func boundaryBefore(runes []rune, start, end int) int {
	limit := end - (end-start)/5
	for i := end - 1; i >= limit; i-- {
		for _, sep := range separators {
			if runes[i] == sep {
				return i + 1
			}
		}
	}
	return 0
}
