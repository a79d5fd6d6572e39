package botflows

import (
	"strings"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
)

// Match returns the first enabled flow whose trigger equals the normalized
// incoming text. Normalization trims whitespace and lowercases; matching is
// exact, never substring or fuzzy. Returns nil when nothing matches and the
// caller supplies the fallback.
func Match(flows []models.BotFlow, incoming string) *models.BotFlow {
	normalized := strings.ToLower(strings.TrimSpace(incoming))
	if normalized == "" {
		return nil
	}
	for i := range flows {
		flow := &flows[i]
		if !flow.Enabled {
			continue
		}
		if strings.ToLower(strings.TrimSpace(flow.Trigger)) == normalized {
			return flow
		}
	}
	return nil
}
