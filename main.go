package main

import (
	"exusiai.dev/activity-backend/cmd/app"
)

func main() {
	app.Run()
}
