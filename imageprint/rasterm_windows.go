//go:build windows

package imageprint

import (
	"fmt"
	"image"
)

func isTermItermWez() bool {
	return false
}

func PrintRasTerm(i image.Image) {
	fmt.Printf("terminal graphics not supported on windows\n")
}
