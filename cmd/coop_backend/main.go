package main

import (
	"os"

	"github.com/SscSPs/coop_savings_app/internal/commands"
)

// @title Cooperative Savings Backend API
// @version 1.0
// @description Back-office API of a school savings cooperative: members, ledger, withdrawal requests and surplus distributions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
