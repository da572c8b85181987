package main

import (
	"github.com/NVIDIA/hwstat/pkg/cli"
)

func main() {
	cli.Execute()
}
