/*
Copyright © 2025 Unitscope Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"context"
	"os"

	"github.com/unitscope/unitscope/pkg/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args))
}
