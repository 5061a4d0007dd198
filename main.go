/*
The watermill demo: loads the config, then runs the selected pipeline
until the window closes or the process is signaled.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lettier/3d-game-shaders-for-beginners/engine"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/mill"
)

func main() {
	path := "config.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	config, err := engine.LoadApplicationConfig(path)
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	game, err := mill.NewGame(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	e, err := engine.New(game.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("failed to initialize: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the loop, the main goroutine shuts down
	go func() {
		<-sigCh
		e.Quit()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
