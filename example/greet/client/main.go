package main

import (
	"context"
	"log"
	"simplerpc/example/greet/api"
	"time"
)

func main() {
	client, err := api.NewGreeterClient("localhost", 8081)
	if err != nil {
		panic(err)
	}
	names := []string{"World", "", "simplerpc"}
	for _, name := range names {
		greeting, err := client.Hello(context.Background(), name)
		if err != nil {
			log.Printf("Hello(%q) failed: %v", name, err)
			continue
		}
		log.Printf("Hello(%q) => %q", name, greeting)
		time.Sleep(100 * time.Millisecond)
	}
	// a remote failure comes back as the original message
	if _, err = client.Repeat(context.Background(), "hi", -1); err != nil {
		log.Printf("Repeat failed as expected: %v", err)
	}
}
