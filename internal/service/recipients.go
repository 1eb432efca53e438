package service

import (
	"strings"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

// ResolveRecipients parses the comma-separated recipient list. Entries are
// trimmed and blanks dropped; duplicates stay as separate upload targets.
func ResolveRecipients(raw string) ([]domain.RecipientID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewConfigurationError("ZOHO_CLIQ_USER_IDS", "no user IDs configured")
	}

	var ids []domain.RecipientID
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, domain.RecipientID(id))
		}
	}
	if len(ids) == 0 {
		return nil, domain.NewConfigurationError("ZOHO_CLIQ_USER_IDS", "list is empty")
	}
	return ids, nil
}
