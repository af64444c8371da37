// Command sldview is the interactive client of the SLD vectorization
// service.
//
// Usage:
//
//	sldview view [image]             open the viewer window
//	sldview render drawing.png       vectorize and write the layers as PNG
//	sldview export drawing.png       vectorize and save the SVG
//	sldview history                  list recorded runs
//	sldview config init|show|path    manage the configuration file
//	sldview shaders                  list and compile the draw programs
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
