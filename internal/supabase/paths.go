package supabase

import (
	"fmt"
	"time"
)

// Storage path conventions. Client-submitted assets live under the
// client's own prefix so per-user storage rules can gate access; admin
// deliverables are timestamped to avoid collisions across re-uploads.

func ClientUploadPath(clientID, orderID, filename string) string {
	return fmt.Sprintf("%s/uploads/%s/client_uploads/%s", clientID, orderID, filename)
}

func VoiceNotePath(clientID, orderID, clipName string) string {
	return fmt.Sprintf("%s/uploads/%s/client_uploads/voice_notes/%s.webm", clientID, orderID, clipName)
}

func DraftPath(clientID, orderID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/uploads/%s/drafts/%d_%s", clientID, orderID, now.UnixMilli(), filename)
}

func FinalAssetPath(clientID, orderID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/uploads/%s/final_assets/%d_%s", clientID, orderID, now.UnixMilli(), filename)
}
