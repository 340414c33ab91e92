// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"os"

	"github.com/MKhiriev/go-configtpl/internal/cli"
	"github.com/MKhiriev/go-configtpl/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr, info))
}
