// Public domain.

package main

import "github.com/soniakeys/gnomon/internal/gnprog"

func main() {
	gnprog.Main()
}
