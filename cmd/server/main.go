package main

import "webapp/internal/app"

func main() {
	app.Run()
}
