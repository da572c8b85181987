package main

import (
	"context"
	"log"
	"os"

	"github.com/NVIDIA/hwstat/pkg/api"
)

func main() {
	cfg := api.Config{SysRoot: os.Getenv("HWSTAT_SYS_ROOT"), Address: os.Getenv("HWSTAT_ADDRESS")}
	if err := api.Serve(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}
