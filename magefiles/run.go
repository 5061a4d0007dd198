//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the binary and runs the demo with config.toml.
func (Run) Demo() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run demo...")
	if _, err := executeCmd(binaryPath, withArgs("config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
