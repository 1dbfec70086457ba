package common

import (
	"strings"

	"github.com/google/uuid"
)

// NewProductID generates a unique product ID with the "prod_" prefix
// Format: prod_<12 hex chars>
func NewProductID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "prod_" + hex[:12]
}
