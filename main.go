/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/apismoke/apismoke/cmd"

func main() {
	cmd.Execute()
}
