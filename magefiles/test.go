//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests against the headless host.
func (Test) Unit() error {
	_, err := executeCmd("go",
		withArgs("test", "-count=1", "./engine/...", "./pipelines/...", "./mill/..."),
		withEnv("CGO_ENABLED=1"),
		withStream(),
	)
	return err
}
