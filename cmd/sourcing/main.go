package main

import "github.com/rogerio-castellano/sourcing-desk/internal/cmd"

// @title Sourcing Desk API
// @version 1.0
// @description Demo agent service for restock dashboards and supplier offer confirmation.
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
