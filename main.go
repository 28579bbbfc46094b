package main

import "github.com/llehouerou/eko/internal/cli"

func main() {
	cli.Execute()
}
