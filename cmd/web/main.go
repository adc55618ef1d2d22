package main

import "jobvibes_backend/internal/app"

func main() {
	app.Run()
}
