package main

import (
	"newsagent/cmd/handlers"
	"newsagent/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
