package r2

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Jeffail/gabs/v2"
)

// buildDocument assembles the workflow metadata JSON document that is
// uploaded next to the image:
//
//	{workflow_name, node_id, timestamp, configuration}
//
// The configuration value is persisted verbatim; no schema is enforced
// beyond JSON-serializability.
func buildDocument(in UploadInput, now time.Time) ([]byte, error) {
	doc := gabs.New()
	doc.Set(in.WorkflowName, "workflow_name")
	doc.Set(in.NodeID, "node_id")

	timestamp := in.Timestamp
	if timestamp == "" {
		timestamp = now.UTC().Format(time.RFC3339)
	}
	doc.Set(timestamp, "timestamp")

	if in.Configuration == nil {
		doc.Set(map[string]any{}, "configuration")
	} else {
		doc.Set(in.Configuration, "configuration")
	}

	data, err := json.Marshal(doc.Data())
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	return data, nil
}

// contentName derives the shared base name for both artifacts from the
// encoded image bytes. Content addressing keeps names deterministic and
// collision-free across concurrent invocations, and re-uploads of the
// same image land on the same key.
func contentName(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return hex.EncodeToString(sum[:])
}
