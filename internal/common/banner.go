package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner prints the application banner
func PrintBanner(version string) {
	banner.PrintSimple("CogniCart", version)
}
