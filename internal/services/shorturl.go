package services

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateShortURL produces a slug for links created without an explicit
// short URL. The first uuid block is enough entropy here; the unique index on
// short_url catches the astronomically unlikely collision.
func GenerateShortURL() string {
	return "lc-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}
