package http

import (
	"github.com/esimov/ascii-particles/websocket"
)

// Defaults returns the parameters of the browser front end when no flags override them.
// An empty Root serves the embedded canvas client.
func Defaults() websocket.HttpParams {
	return websocket.HttpParams{
		Address: "localhost:5000",
		Prefix:  "/",
		Root:    "",
	}
}
