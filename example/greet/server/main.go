package main

import (
	"context"
	"errors"
	"simplerpc"
	"strings"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	svc := simplerpc.NewService("greeter")
	simplerpc.Handle1(svc, "Hello", func(ctx context.Context, name string) (string, error) {
		return "Hello, " + name, nil
	})
	simplerpc.Handle2(svc, "Repeat", func(ctx context.Context, greeting string, times int) (string, error) {
		if times < 1 {
			return "", errors.New("times must be positive")
		}
		return strings.Repeat(greeting, times), nil
	})
	if err := simplerpc.Export(svc, 8081, simplerpc.ServerWithLogger(logger)); err != nil {
		panic(err)
	}
}
