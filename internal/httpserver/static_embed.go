package httpserver

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberfs "github.com/gofiber/fiber/v2/middleware/filesystem"
)

// webAssets contains the recorder front-end served at the root path.
//
//go:embed web
var webAssets embed.FS

const webRoot = "web"

func mountFrontend(app *fiber.App) {
	dist, err := fs.Sub(webAssets, webRoot)
	if err != nil {
		log.Printf("frontend assets not embedded: %v", err)
		return
	}

	app.Use("/", fiberfs.New(fiberfs.Config{
		Root:   http.FS(dist),
		Index:  "index.html",
		Browse: false,
	}))
}
