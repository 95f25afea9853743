package badger

// Key prefixes for different data types
const (
	snapshotMetaPrefix    = "snapmeta"
	snapshotConceptPrefix = "snapcon"
)

// makeSnapshotMetaKey generates the key holding a snapshot's metadata.
// Format: prefix:fingerprint
func makeSnapshotMetaKey(fingerprint string) []byte {
	return []byte(snapshotMetaPrefix + ":" + fingerprint)
}

// makeSnapshotConceptKey generates the key for one concept of a snapshot.
// Format: prefix:fingerprint:uri
func makeSnapshotConceptKey(fingerprint, uri string) []byte {
	prefix := makePartialSnapshotConceptKey(fingerprint)
	buf := make([]byte, len(prefix)+len(uri))
	offset := copy(buf, prefix)
	copy(buf[offset:], uri)
	return buf
}

// makePartialSnapshotConceptKey generates the prefix shared by every concept of a snapshot.
// Format: prefix:fingerprint:
func makePartialSnapshotConceptKey(fingerprint string) []byte {
	return []byte(snapshotConceptPrefix + ":" + fingerprint + ":")
}
