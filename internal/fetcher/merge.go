package fetcher

// DeduplicateRecords walks the records once, keeping only the first record
// seen for each URL and preserving relative order. A missing URL is a
// valid key: the first empty-URL record survives and later ones are
// dropped as duplicates of it. The operation is idempotent.
func DeduplicateRecords(records []VideoRecord) []VideoRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]VideoRecord, 0, len(records))

	for _, record := range records {
		if _, ok := seen[record.URL]; ok {
			continue
		}

		seen[record.URL] = struct{}{}
		unique = append(unique, record)
	}

	return unique
}
