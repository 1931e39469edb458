package chunk

// Segment is a contiguous rune range [Start, End) of the source text.
type Segment struct {
	Index int
	Start int
	End   int
	Text  string
}

// ByRunes cuts text into consecutive windows of at most size runes. The
// windows cover the text exactly, without overlap.
func ByRunes(text string, size int) []Segment {
	if size <= 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	segments := make([]Segment, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		segments = append(segments, Segment{
			Index: len(segments),
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
		})
	}
	return segments
}
