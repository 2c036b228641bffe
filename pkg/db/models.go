package db

// WordEntry is a stored dictionary record. ID is assigned by the store.
type WordEntry struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// WordPair is a word/definition pair without identity, as found in legacy
// storage and import payloads.
type WordPair struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}
