package dataset

// Stats summarizes the health of a dataset
type Stats struct {
	Records      int
	UniqueImages int
	Duplicates   int
	Incomplete   int
	WithLevels   int
}

// Summarize counts records, duplicate image paths, incomplete entries and entries carrying levels
func Summarize(records []ImageRecord) Stats {
	stats := Stats{Records: len(records)}
	seen := make(map[string]bool, len(records))

	for i := range records {
		r := &records[i]
		if r.ImagePath != "" {
			if seen[r.ImagePath] {
				stats.Duplicates++
			} else {
				seen[r.ImagePath] = true
			}
		}
		if !r.Complete() {
			stats.Incomplete++
		}
		if r.L1 != nil {
			stats.WithLevels++
		}
	}

	stats.UniqueImages = len(seen)
	return stats
}
