package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeDraftToken creates an opaque page token from a draft listing cursor.
func EncodeDraftToken(cursor domain.DraftCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", cursor.LastUpdatedAt.UTC().Format(timeFormat), cursor.DraftID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeDraftToken parses a token produced by EncodeDraftToken.
func DecodeDraftToken(token string) (domain.DraftCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.DraftCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return domain.DraftCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	updatedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.DraftCursor{}, fmt.Errorf("invalid pagination token format (updated_at parse): %w", err)
	}

	return domain.DraftCursor{LastUpdatedAt: updatedAt, DraftID: parts[1]}, nil
}
