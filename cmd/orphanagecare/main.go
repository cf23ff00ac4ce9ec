package main

import (
	"context"
	"log"
	"os"

	"github.com/dalemusser/orphanagecare/internal/app/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
