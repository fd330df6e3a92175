package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"r2node/nodes/r2"
	"r2node/runtime"
)

func main() {
	manifest := os.Getenv("R2NODE_MANIFEST")
	if manifest == "" {
		manifest = "nodes.yaml"
	}

	app, err := runtime.NewApp(manifest)
	if err != nil {
		log.Fatalf("Error initializing app: %v", err)
	}

	for name, def := range app.Nodes {
		switch def.Type {
		case "r2.upload":
			p := &r2.Plugin{}
			if err := runtime.InitializeConfig(&p.Config, def.Config); err != nil {
				log.Fatalf("Error configuring node %s: %v", name, err)
			}
			if err := app.Container.RegisterNode(name, p); err != nil {
				log.Fatalf("Error registering node %s: %v", name, err)
			}
		default:
			log.Fatalf("Unknown node type %q for node %q", def.Type, name)
		}
	}

	if err := app.Container.Initialize(); err != nil {
		log.Fatalf("Error initializing nodes: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	invoker := runtime.NewInvoker(logger)

	g := gin.Default()
	runtime.NewHTTPHandler(app.Container, invoker, g)

	err = g.Run(":8080")
	if err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
