// Package main содержит точку входа CLI-клиента AdHub.
//
// Версия и дата сборки передаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=2026-01-16" ./cmd/adhub
package main

import "github.com/Altair788/AdHub/internal/agent/cli"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
