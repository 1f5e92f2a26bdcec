package production

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion derives a version string for a snapshot. A snapshot that
// carries its own Version keeps it; otherwise the version is the leading
// bytes of the SHA-256 digest of the snapshot's JSON form, suffixed with a
// UTC capture timestamp so re-captures of identical state stay orderable.
func ComputeVersion(snapshot *BindingSnapshot) string {
	if snapshot.Version != "" {
		return snapshot.Version
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		// Snapshots hold plain JSON-encodable values; a marshal failure
		// means the caller put something opaque in the bag.
		return fmt.Sprintf("unversioned-%d", time.Now().Unix())
	}

	digest := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", digest[:8], time.Now().UTC().Format("20060102T150405Z"))
}
